package sdt

import (
	"context"
	"net/url"

	"github.com/jrsteele09/isp-console/api"
)

// Terminal is a subscriber distribution terminal in the access network.
type Terminal struct {
	ID           api.ID        `json:"id"`
	Name         string        `json:"name"`
	SerialNumber string        `json:"serial_number"`
	Location     string        `json:"location,omitempty"`
	IPAddress    string        `json:"ip_address,omitempty"`
	Status       string        `json:"status"`
	LastSeen     api.Timestamp `json:"last_seen"`
}

type Status struct {
	ID     api.ID        `json:"id"`
	Status string        `json:"status"`
	Uptime int64         `json:"uptime_seconds"`
	Since  api.Timestamp `json:"since"`
}

type Health struct {
	ID          api.ID  `json:"id"`
	Healthy     bool    `json:"healthy"`
	CPUPercent  float64 `json:"cpu_percent"`
	MemPercent  float64 `json:"memory_percent"`
	Temperature float64 `json:"temperature"`
}

// Monitoring summarises every terminal.
type Monitoring struct {
	Total   int `json:"total"`
	Online  int `json:"online"`
	Offline int `json:"offline"`
	Alerts  int `json:"alerts"`
}

type Service struct {
	api.Resource[Terminal]
}

func NewService(client *api.Client) *Service {
	return &Service{Resource: api.NewResource[Terminal](client, api.SDT)}
}

// ByStatus lists terminals in one status, or all when status is empty.
func (s *Service) ByStatus(ctx context.Context, status string) (api.Page[Terminal], error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	return s.List(ctx, q)
}

func (s *Service) Status(ctx context.Context, id api.ID) (*Status, error) {
	var out Status
	if err := s.GetAction(ctx, id, "status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Health(ctx context.Context, id api.ID) (*Health, error) {
	var out Health
	if err := s.GetAction(ctx, id, "health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Monitoring(ctx context.Context) (*Monitoring, error) {
	var out Monitoring
	if err := s.Client().Get(ctx, api.SDTMonitoring, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
