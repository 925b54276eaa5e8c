package domain

import (
	"errors"
	"fmt"
)

// Business errors returned by the resource service. Handlers map each of
// these to exactly one HTTP status code.
var (
	ErrInvalidPath      = errors.New("invalid path")
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrForbidden        = errors.New("forbidden action")
	ErrFolderNotEmpty   = errors.New("folder is not empty")
	ErrRootFolderExists = errors.New("root folder already exists")
)

// ErrIntegrity marks data corruption (a user without a root folder, an
// orphaned parent chain). Never surfaced as a business error.
var ErrIntegrity = errors.New("data integrity violation")

// NotFoundError identifies which path segment was missing, so callers can
// point at the exact component that failed to resolve.
type NotFoundError struct {
	Missing string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q does not exist", e.Missing)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound wraps a missing segment name into a NotFoundError.
func NotFound(missing string) error {
	return &NotFoundError{Missing: missing}
}

// MissingSegment extracts the missing path component from an error chain,
// if present.
func MissingSegment(err error) (string, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Missing, true
	}
	return "", false
}
