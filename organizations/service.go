package organizations

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

// Service is the organization management client.
type Service struct {
	api.Resource[Organization]
}

func NewService(client *api.Client) *Service {
	return &Service{Resource: api.NewResource[Organization](client, api.Organizations)}
}

// Page lists one page of organizations. page counts from 1.
func (s *Service) Page(ctx context.Context, page int, search string) (api.Page[Organization], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if search != "" {
		q.Set("search", search)
	}
	return s.List(ctx, q)
}

func (s *Service) Create(ctx context.Context, org Organization) (*Organization, error) {
	if err := Validate(org); err != nil {
		return nil, err
	}
	out, err := s.Resource.Create(ctx, org)
	return out, apperrors.Wrapf(err, "[organizations.Create] %s", org.Code)
}

func (s *Service) Update(ctx context.Context, id api.ID, org Organization) (*Organization, error) {
	if err := Validate(org); err != nil {
		return nil, err
	}
	out, err := s.Resource.Update(ctx, id, org)
	return out, apperrors.Wrapf(err, "[organizations.Update] %s", id)
}
