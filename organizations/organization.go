package organizations

import (
	"regexp"
	"strings"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Organization is a customer-facing business unit that users belong to.
type Organization struct {
	ID          api.ID        `json:"id"`
	Name        string        `json:"name"`
	Code        string        `json:"code"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Website     string        `json:"website,omitempty"`
	Address     string        `json:"address,omitempty"`
	Description string        `json:"description,omitempty"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   api.Timestamp `json:"created_at"`
}

// Validate checks an organization form before it is sent.
func Validate(o Organization) error {
	fe := apperrors.FieldErrors{}
	if strings.TrimSpace(o.Name) == "" {
		fe["name"] = "Organization name is required"
	}
	if strings.TrimSpace(o.Code) == "" {
		fe["code"] = "Organization code is required"
	}
	if o.Email != "" && !emailPattern.MatchString(o.Email) {
		fe["email"] = "Email is invalid"
	}
	return fe.OrNil()
}
