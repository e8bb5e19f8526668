// Package errors provides a lightweight structured error type (VaultSyncError)
// for category-based classification of sync failures in the driver and CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a sync error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Vault and per-document errors
	CategorySource   ErrorCategory = "source"
	CategoryMetadata ErrorCategory = "metadata"
	CategoryDocument ErrorCategory = "document"

	// External system integration errors
	CategoryGit    ErrorCategory = "git"
	CategoryNotify ErrorCategory = "notify"

	// Storage and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryLedger     ErrorCategory = "ledger"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the run
	SeverityError   ErrorSeverity = "error"   // Fails one document, run continues
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded result
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// VaultSyncError is a structured error with category, severity and context
type VaultSyncError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for VaultSyncError
type ContextFields map[string]any

// Error implements the error interface
func (e *VaultSyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *VaultSyncError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *VaultSyncError) WithContext(key string, value any) *VaultSyncError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new VaultSyncError
func New(category ErrorCategory, severity ErrorSeverity, message string) *VaultSyncError {
	return &VaultSyncError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new VaultSyncError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *VaultSyncError {
	return &VaultSyncError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first VaultSyncError in err's chain.
func As(err error) (*VaultSyncError, bool) {
	var vse *VaultSyncError
	if stderrors.As(err, &vse) {
		return vse, true
	}
	return nil, false
}

// IsCategory checks if an error (or anything it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if vse, ok := As(err); ok {
		return vse.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a VaultSyncError
func GetCategory(err error) ErrorCategory {
	if vse, ok := As(err); ok {
		return vse.Category
	}
	return CategoryInternal
}
