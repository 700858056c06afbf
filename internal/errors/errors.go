package errors

import (
	"errors"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Common error types for the console
var (
	// Session errors
	ErrSessionExpired   = errors.New("session expired")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoRefreshToken   = errors.New("no refresh token available")

	// Authentication errors
	ErrInvalidToken = errors.New("invalid token")

	// Request errors
	ErrRequestCancelled = errors.New("duplicate request cancelled")
	ErrTimeout          = errors.New("request timed out")
)

// Wrapf annotates err with a message and stack. It returns nil for a nil err.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// FieldErrors maps a form field to the message shown next to it. Forms that
// fail validation are never sent to the backend.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns nil when no field failed.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
