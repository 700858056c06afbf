package users

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

const DefaultPageSize = 20

// CreateForm is the new-user form. ConfirmPassword is checked locally only.
type CreateForm struct {
	LoginID         string   `json:"login_id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Mobile          string   `json:"mobile,omitempty"`
	UserType        UserType `json:"user_type"`
	OrganizationID  api.ID   `json:"organization,omitempty"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"-"`
}

// UpdateForm is a partial update; nil fields are left unchanged.
type UpdateForm struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Mobile   *string   `json:"mobile,omitempty"`
	UserType *UserType `json:"user_type,omitempty"`
	IsActive *bool     `json:"is_active,omitempty"`
}

type PasswordChangeForm struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"-"`
}

// ListParams filters the user list. Zero values are omitted from the query.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	UserType UserType
	IsActive *bool
}

func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	q.Set("page_size", strconv.Itoa(size))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.UserType != "" {
		q.Set("user_type", string(p.UserType))
	}
	if p.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*p.IsActive))
	}
	return q
}

// Service is the user management client.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context, params ListParams) (api.Page[User], error) {
	return api.List[User](ctx, s.client, api.Users, params.Query())
}

func (s *Service) Get(ctx context.Context, id api.ID) (*User, error) {
	var user User
	if err := s.client.Get(ctx, api.Detail(api.Users, id), nil, &user); err != nil {
		return nil, apperrors.Wrapf(err, "[users.Get] %s", id)
	}
	return &user, nil
}

func (s *Service) Create(ctx context.Context, form CreateForm) (*User, error) {
	if err := ValidateCreate(form); err != nil {
		return nil, err
	}
	var user User
	if err := s.client.Post(ctx, api.Users, form, &user); err != nil {
		return nil, apperrors.Wrapf(err, "[users.Create] %s", form.LoginID)
	}
	return &user, nil
}

func (s *Service) Update(ctx context.Context, id api.ID, form UpdateForm) (*User, error) {
	if err := ValidateUpdate(form); err != nil {
		return nil, err
	}
	var user User
	if err := s.client.Patch(ctx, api.Detail(api.Users, id), form, &user); err != nil {
		return nil, apperrors.Wrapf(err, "[users.Update] %s", id)
	}
	return &user, nil
}

func (s *Service) Delete(ctx context.Context, id api.ID) error {
	return apperrors.Wrapf(s.client.Delete(ctx, api.Detail(api.Users, id), nil), "[users.Delete] %s", id)
}

// Profile returns the signed in user's own record.
func (s *Service) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Get(ctx, api.UsersProfile, nil, &user); err != nil {
		return nil, apperrors.Wrapf(err, "[users.Profile]")
	}
	return &user, nil
}

func (s *Service) ChangePassword(ctx context.Context, form PasswordChangeForm) error {
	if err := ValidatePasswordChange(form); err != nil {
		return err
	}
	return apperrors.Wrapf(s.client.Post(ctx, api.UsersChangePassword, form, nil), "[users.ChangePassword]")
}

// Permissions lists the permission codes granted to the signed in user.
func (s *Service) Permissions(ctx context.Context) ([]string, error) {
	var out struct {
		Permissions []string `json:"permissions"`
	}
	if err := s.client.Get(ctx, api.UsersPermissions, nil, &out); err != nil {
		return nil, apperrors.Wrapf(err, "[users.Permissions]")
	}
	return out.Permissions, nil
}
