package auth

import (
	"strings"

	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

const (
	minLoginIDLength  = 3
	minPasswordLength = 6
)

// Credentials are the login form values. They are never persisted.
type Credentials struct {
	LoginID    string `json:"login_id"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// ValidateCredentials checks the login form. A form that fails here is not
// sent to the backend.
func ValidateCredentials(c Credentials) error {
	fe := apperrors.FieldErrors{}

	switch loginID := strings.TrimSpace(c.LoginID); {
	case loginID == "":
		fe["login_id"] = "Login ID is required"
	case len(loginID) < minLoginIDLength:
		fe["login_id"] = "Login ID must be at least 3 characters"
	}

	switch {
	case c.Password == "":
		fe["password"] = "Password is required"
	case len(c.Password) < minPasswordLength:
		fe["password"] = "Password must be at least 6 characters"
	}

	return fe.OrNil()
}
