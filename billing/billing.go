package billing

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/jrsteele09/isp-console/api"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
)

type Invoice struct {
	ID         api.ID        `json:"id"`
	Number     string        `json:"number"`
	CustomerID api.ID        `json:"customer"`
	Amount     float64       `json:"amount"`
	Status     string        `json:"status"`
	IssuedAt   api.Timestamp `json:"issued_at"`
	DueAt      api.Timestamp `json:"due_at"`
}

type Payment struct {
	ID         api.ID        `json:"id"`
	InvoiceID  api.ID        `json:"invoice"`
	CustomerID api.ID        `json:"customer"`
	Amount     float64       `json:"amount"`
	Method     string        `json:"method"`
	PaidAt     api.Timestamp `json:"paid_at"`
}

type GenerateInvoiceRequest struct {
	CustomerID api.ID `json:"customer_id"`
	Period     string `json:"period"`
}

type ProcessPaymentRequest struct {
	InvoiceID api.ID  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

func (r ProcessPaymentRequest) validate() error {
	fe := apperrors.FieldErrors{}
	if r.InvoiceID.IsZero() {
		fe["invoice_id"] = "Invoice is required"
	}
	if r.Amount <= 0 {
		fe["amount"] = "Amount must be greater than zero"
	}
	if r.Method == "" {
		fe["method"] = "Payment method is required"
	}
	return fe.OrNil()
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Invoices lists invoices; status filters when not empty.
func (s *Service) Invoices(ctx context.Context, status string) (api.Page[Invoice], error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	return api.List[Invoice](ctx, s.client, api.BillingInvoices, q)
}

func (s *Service) Payments(ctx context.Context) (api.Page[Payment], error) {
	return api.List[Payment](ctx, s.client, api.BillingPayments, nil)
}

// Reports returns the backend's billing summary as-is.
func (s *Service) Reports(ctx context.Context, period string) (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	if err := s.client.Get(ctx, api.BillingReports, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*Invoice, error) {
	if req.CustomerID.IsZero() {
		return nil, apperrors.FieldErrors{"customer_id": "Customer is required"}
	}
	var out Invoice
	if err := s.client.Post(ctx, api.BillingGenerateInvoice, req, &out); err != nil {
		return nil, apperrors.Wrapf(err, "[billing.GenerateInvoice] %s", req.CustomerID)
	}
	return &out, nil
}

func (s *Service) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*Payment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	var out Payment
	if err := s.client.Post(ctx, api.BillingProcessPayment, req, &out); err != nil {
		return nil, apperrors.Wrapf(err, "[billing.ProcessPayment] %s", req.InvoiceID)
	}
	return &out, nil
}
