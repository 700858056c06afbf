package customers

import (
	"context"
	"net/url"
	"strings"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

type Customer struct {
	ID          api.ID        `json:"id"`
	AccountNo   string        `json:"account_number"`
	Name        string        `json:"name"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Address     string        `json:"address,omitempty"`
	Status      string        `json:"status"`
	Plan        string        `json:"plan,omitempty"`
	Balance     float64       `json:"balance"`
	ConnectedAt api.Timestamp `json:"connected_at"`
}

type Subscription struct {
	ID        api.ID        `json:"id"`
	Plan      string        `json:"plan"`
	Status    string        `json:"status"`
	Bandwidth string        `json:"bandwidth,omitempty"`
	Price     float64       `json:"price"`
	StartedAt api.Timestamp `json:"started_at"`
}

type Payment struct {
	ID     api.ID        `json:"id"`
	Amount float64       `json:"amount"`
	Method string        `json:"method"`
	PaidAt api.Timestamp `json:"paid_at"`
}

func Validate(c Customer) error {
	fe := apperrors.FieldErrors{}
	if strings.TrimSpace(c.Name) == "" {
		fe["name"] = "Customer name is required"
	}
	if strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Email) == "" {
		fe["phone"] = "Phone or email is required"
	}
	return fe.OrNil()
}

type Service struct {
	api.Resource[Customer]
}

func NewService(client *api.Client) *Service {
	return &Service{Resource: api.NewResource[Customer](client, api.Customers)}
}

func (s *Service) Create(ctx context.Context, c Customer) (*Customer, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	out, err := s.Resource.Create(ctx, c)
	return out, apperrors.Wrapf(err, "[customers.Create] %s", c.Name)
}

func (s *Service) Update(ctx context.Context, id api.ID, c Customer) (*Customer, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	out, err := s.Resource.Update(ctx, id, c)
	return out, apperrors.Wrapf(err, "[customers.Update] %s", id)
}

// Search matches name, account number, phone or email on the backend.
func (s *Service) Search(ctx context.Context, term string) (api.Page[Customer], error) {
	return api.List[Customer](ctx, s.Client(), api.CustomersSearch, url.Values{"q": []string{term}})
}

func (s *Service) Subscriptions(ctx context.Context, id api.ID) (api.Page[Subscription], error) {
	return api.List[Subscription](ctx, s.Client(), api.Action(api.Customers, id, "subscriptions"), nil)
}

func (s *Service) Payments(ctx context.Context, id api.ID) (api.Page[Payment], error) {
	return api.List[Payment](ctx, s.Client(), api.Action(api.Customers, id, "payments"), nil)
}
