package reports

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jrsteele09/isp-console/api"
)

type Kind string

const (
	KindRevenue   Kind = "revenue"
	KindCustomers Kind = "customers"
	KindNetwork   Kind = "network"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Point is one sample in a report series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Report struct {
	Period    string             `json:"period"`
	Generated api.Timestamp      `json:"generated_at"`
	Totals    map[string]float64 `json:"totals"`
	Series    []Point            `json:"series"`
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Revenue(ctx context.Context, period string) (*Report, error) {
	return s.fetch(ctx, api.ReportsRevenue, period)
}

func (s *Service) Customers(ctx context.Context, period string) (*Report, error) {
	return s.fetch(ctx, api.ReportsCustomers, period)
}

func (s *Service) Network(ctx context.Context, period string) (*Report, error) {
	return s.fetch(ctx, api.ReportsNetwork, period)
}

// Export asks the backend to render a report and returns the file bytes.
func (s *Service) Export(ctx context.Context, kind Kind, format Format, period string) ([]byte, error) {
	switch kind {
	case KindRevenue, KindCustomers, KindNetwork:
	default:
		return nil, fmt.Errorf("[reports.Export] unknown report %q", kind)
	}
	switch format {
	case FormatCSV, FormatPDF, FormatXLSX:
	default:
		return nil, fmt.Errorf("[reports.Export] unknown format %q", format)
	}

	var body []byte
	err := s.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   api.ReportsExport,
		Query:  url.Values{"type": {string(kind)}, "format": {string(format)}, "period": {period}},
	}, &body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (s *Service) fetch(ctx context.Context, path, period string) (*Report, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	var out Report
	if err := s.client.Get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
