package users

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/isp-console/api"
)

// UserType is the console role tier of an account.
type UserType string

const (
	UserTypeUser    UserType = "user"
	UserTypeManager UserType = "manager"
	UserTypeAdmin   UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeUser, UserTypeManager, UserTypeAdmin:
		return true
	}
	return false
}

// User is the account profile returned by the backend. The session holds one
// of these as the signed in user.
type User struct {
	ID             api.ID        `json:"id"`
	LoginID        string        `json:"login_id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Mobile         string        `json:"mobile,omitempty"`
	UserType       UserType      `json:"user_type"`
	IsActive       bool          `json:"is_active"`
	OrganizationID api.ID        `json:"organization,omitempty"`
	Roles          []string      `json:"roles,omitempty"`
	DateJoined     api.Timestamp `json:"date_joined"`
	LastLogin      api.Timestamp `json:"last_login"`
	PasswordHash   string        `json:"-"` // dev backend only, never serialized
}

// DisplayName falls back to the login id when no name is set.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.LoginID
}

func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}

func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
