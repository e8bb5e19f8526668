// Package errors provides sentinel errors for vault discovery operations.
package errors

import "errors"

var (
	// ErrVaultWalkFailed indicates filesystem traversal of the vault failed.
	ErrVaultWalkFailed = errors.New("vault walk failed")

	// ErrFileReadFailed indicates reading content from a discovered note failed.
	ErrFileReadFailed = errors.New("note read failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the vault root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
