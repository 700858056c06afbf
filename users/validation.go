package users

import (
	"regexp"
	"strings"

	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateCreate checks a new-user form before it is sent.
func ValidateCreate(form CreateForm) error {
	fe := apperrors.FieldErrors{}

	switch loginID := strings.TrimSpace(form.LoginID); {
	case loginID == "":
		fe["login_id"] = "Login ID is required"
	case len(loginID) < 3:
		fe["login_id"] = "Login ID must be at least 3 characters"
	}

	switch email := strings.TrimSpace(form.Email); {
	case email == "":
		fe["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		fe["email"] = "Email is invalid"
	}

	switch name := strings.TrimSpace(form.Name); {
	case name == "":
		fe["name"] = "Name is required"
	case len(name) < 2:
		fe["name"] = "Name must be at least 2 characters"
	}

	if form.UserType == "" {
		fe["user_type"] = "User type is required"
	} else if !form.UserType.Valid() {
		fe["user_type"] = "User type must be user, manager or admin"
	}

	switch {
	case form.Password == "":
		fe["password"] = "Password is required"
	case len(form.Password) < 8:
		fe["password"] = "Password must be at least 8 characters"
	case form.Password != form.ConfirmPassword:
		fe["confirm_password"] = "Passwords do not match"
	}

	return fe.OrNil()
}

// ValidateUpdate checks only the fields being changed.
func ValidateUpdate(form UpdateForm) error {
	fe := apperrors.FieldErrors{}
	if form.Name != nil && len(strings.TrimSpace(*form.Name)) < 2 {
		fe["name"] = "Name must be at least 2 characters"
	}
	if form.Email != nil && !emailPattern.MatchString(strings.TrimSpace(*form.Email)) {
		fe["email"] = "Email is invalid"
	}
	if form.UserType != nil && !form.UserType.Valid() {
		fe["user_type"] = "User type must be user, manager or admin"
	}
	return fe.OrNil()
}

// ValidatePasswordChange applies the strength rule to the new password.
func ValidatePasswordChange(form PasswordChangeForm) error {
	fe := apperrors.FieldErrors{}
	if form.CurrentPassword == "" {
		fe["current_password"] = "Current password is required"
	}
	if err := ValidatePasswordStrength(form.NewPassword); err != nil {
		fe["new_password"] = err.Error()
	} else if form.NewPassword != form.ConfirmPassword {
		fe["confirm_password"] = "Passwords do not match"
	}
	return fe.OrNil()
}
