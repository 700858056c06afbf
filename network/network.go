package network

import (
	"context"

	"github.com/jrsteele09/isp-console/api"
)

type Interface struct {
	ID        api.ID  `json:"id"`
	Name      string  `json:"name"`
	Device    string  `json:"device"`
	Status    string  `json:"status"`
	SpeedMbps int     `json:"speed_mbps"`
	RxMbps    float64 `json:"rx_mbps"`
	TxMbps    float64 `json:"tx_mbps"`
}

type Connection struct {
	ID         api.ID        `json:"id"`
	CustomerID api.ID        `json:"customer"`
	IPAddress  string        `json:"ip_address"`
	Status     string        `json:"status"`
	Since      api.Timestamp `json:"since"`
}

type Stats struct {
	ActiveConnections int     `json:"active_connections"`
	TotalBandwidth    float64 `json:"total_bandwidth_mbps"`
	Utilization       float64 `json:"utilization_percent"`
	PacketLoss        float64 `json:"packet_loss_percent"`
	Latency           float64 `json:"latency_ms"`
}

type Monitoring struct {
	InterfacesUp   int `json:"interfaces_up"`
	InterfacesDown int `json:"interfaces_down"`
	Alerts         int `json:"alerts"`
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Interfaces(ctx context.Context) (api.Page[Interface], error) {
	return api.List[Interface](ctx, s.client, api.NetworkInterfaces, nil)
}

func (s *Service) Connections(ctx context.Context) (api.Page[Connection], error) {
	return api.List[Connection](ctx, s.client, api.NetworkConnections, nil)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := s.client.Get(ctx, api.NetworkStats, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Monitoring(ctx context.Context) (*Monitoring, error) {
	var out Monitoring
	if err := s.client.Get(ctx, api.NetworkMonitoring, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
