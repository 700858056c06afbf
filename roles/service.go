package roles

import (
	"context"
	"net/url"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

// Service is the role management client.
type Service struct {
	api.Resource[Role]
}

func NewService(client *api.Client) *Service {
	return &Service{Resource: api.NewResource[Role](client, api.Roles)}
}

func (s *Service) Create(ctx context.Context, role Role) (*Role, error) {
	if err := Validate(role); err != nil {
		return nil, err
	}
	out, err := s.Resource.Create(ctx, role)
	return out, apperrors.Wrapf(err, "[roles.Create] %s", role.Name)
}

func (s *Service) Update(ctx context.Context, id api.ID, role Role) (*Role, error) {
	if err := Validate(role); err != nil {
		return nil, err
	}
	out, err := s.Resource.Update(ctx, id, role)
	return out, apperrors.Wrapf(err, "[roles.Update] %s", id)
}

func (s *Service) Assign(ctx context.Context, a Assignment) error {
	return apperrors.Wrapf(s.Client().Post(ctx, api.RolesAssign, a, nil), "[roles.Assign]")
}

func (s *Service) BulkAssign(ctx context.Context, b BulkAssignment) error {
	if err := ValidateBulk(b); err != nil {
		return err
	}
	return apperrors.Wrapf(s.Client().Post(ctx, api.RolesBulkAssign, b, nil), "[roles.BulkAssign]")
}

// UserRoles lists stored assignments, optionally filtered by user or role.
func (s *Service) UserRoles(ctx context.Context, userID, roleID api.ID) (api.Page[UserRole], error) {
	q := url.Values{}
	if !userID.IsZero() {
		q.Set("user", userID.String())
	}
	if !roleID.IsZero() {
		q.Set("role", roleID.String())
	}
	return api.List[UserRole](ctx, s.Client(), api.UserRoles, q)
}

func (s *Service) Permissions(ctx context.Context) ([]Permission, error) {
	return api.ListAll[Permission](ctx, s.Client(), api.Permissions, nil, 0)
}
