package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

var (
	// ErrCancelled marks a request superseded by an identical newer one. It is
	// not an application failure and should be filtered before reaching users.
	ErrCancelled = apperrors.ErrRequestCancelled
	// ErrTimeout marks a request that exceeded the per-call upper bound.
	ErrTimeout = apperrors.ErrTimeout
)

const maxPlainMessage = 200

// Error is a failed call. StatusCode is zero for transport failures, in which
// case Err holds the cause.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newStatusError(method, path string, status int, body []byte) *Error {
	return &Error{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    extractMessage(body),
		Body:       body,
	}
}

// extractMessage pulls a human readable message out of an error body, or
// returns "" when the body carries none.
func extractMessage(body []byte) string {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, key := range []string{"message", "error_description", "detail", "error"} {
			if s, ok := envelope[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
		// field errors: {"email": ["already taken"]}
		for field, v := range envelope {
			if list, ok := v.([]any); ok && len(list) > 0 {
				if s, ok := list[0].(string); ok {
					return field + ": " + s
				}
			}
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) <= maxPlainMessage && !strings.HasPrefix(text, "<") {
		return text
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsServerError(err error) bool {
	return StatusCode(err) >= http.StatusInternalServerError
}

// IsCancelled reports duplicate-request cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsNetwork reports a transport failure that never produced a response.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0
}

// Message returns the best user-facing text for err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	switch {
	case err == nil:
		return ""
	case IsTimeout(err):
		return "Request timed out"
	case errors.As(err, &apiErr) && apiErr.StatusCode != 0 && apiErr.Message != "":
		return apiErr.Message
	}
	return fallback
}

func isCallerCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
