package roles

import (
	"strings"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

// Role is a named bundle of permission codes.
type Role struct {
	ID          api.ID   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
	UserCount   int      `json:"user_count"`
}

func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// Assignment grants one role to one user.
type Assignment struct {
	UserID api.ID `json:"user_id"`
	RoleID api.ID `json:"role_id"`
}

// BulkAssignment grants every listed role to every listed user.
type BulkAssignment struct {
	UserIDs []api.ID `json:"user_ids"`
	RoleIDs []api.ID `json:"role_ids"`
}

// UserRole is a stored assignment as listed by /user-roles/.
type UserRole struct {
	ID         api.ID        `json:"id"`
	UserID     api.ID        `json:"user"`
	RoleID     api.ID        `json:"role"`
	RoleName   string        `json:"role_name,omitempty"`
	AssignedAt api.Timestamp `json:"assigned_at"`
}

type Permission struct {
	ID       api.ID `json:"id"`
	Codename string `json:"codename"`
	Name     string `json:"name"`
}

// Validate checks a role form before it is sent.
func Validate(r Role) error {
	fe := apperrors.FieldErrors{}
	switch name := strings.TrimSpace(r.Name); {
	case name == "":
		fe["name"] = "Role name is required"
	case len(name) < 2:
		fe["name"] = "Role name must be at least 2 characters"
	}
	return fe.OrNil()
}

func ValidateBulk(b BulkAssignment) error {
	fe := apperrors.FieldErrors{}
	if len(b.UserIDs) == 0 {
		fe["user_ids"] = "Select at least one user"
	}
	if len(b.RoleIDs) == 0 {
		fe["role_ids"] = "Select at least one role"
	}
	return fe.OrNil()
}
