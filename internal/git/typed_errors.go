package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Typed git errors enabling structured classification without string parsing upstream.
type AuthError struct {
	Op, URL string
	Err     error
}

func (e *AuthError) Error() string { return fmt.Sprintf("%s auth error for %s: %v", e.Op, e.URL, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Op, URL string
	Err     error
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found %s: %v", e.Op, e.URL, e.Err) }
func (e *NotFoundError) Unwrap() error { return e.Err }

type RemoteDivergedError struct {
	URL, Branch string
}

func (e *RemoteDivergedError) Error() string {
	return fmt.Sprintf("local branch %s diverged from %s; resolve the checkout manually", e.Branch, e.URL)
}

// LocalChangesError reports uncommitted work in the vault checkout that a
// pull would overwrite. The checkout is left untouched.
type LocalChangesError struct {
	Branch string
	Paths  []string
}

func (e *LocalChangesError) Error() string {
	return fmt.Sprintf("checkout of %s has uncommitted changes (%s); commit or stash them before pulling",
		e.Branch, strings.Join(e.Paths, ", "))
}

// classifyError wraps go-git failures into typed variants when possible.
func classifyError(op, url string, err error) error {
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "auth fail") || strings.Contains(l, "invalid username or password"):
		return &AuthError{Op: op, URL: url, Err: err}
	case strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist"):
		return &NotFoundError{Op: op, URL: url, Err: err}
	default:
		return fmt.Errorf("%s %s: %w", op, url, err)
	}
}

// isTransient reports whether a classified clone or fetch error is worth
// retrying. Authentication, missing repositories and cancellation are not.
func isTransient(err error) bool {
	var authErr *AuthError
	var notFound *NotFoundError
	switch {
	case errors.As(err, &authErr), errors.As(err, &notFound):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
