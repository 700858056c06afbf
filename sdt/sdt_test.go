package sdt_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/internal/apitest"
	"github.com/jrsteele09/isp-console/sdt"
	"github.com/stretchr/testify/require"
)

func TestService_ByStatus(t *testing.T) {
	var gotStatus string
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		apitest.WriteJSON(w, http.StatusOK, map[string]any{
			"count":   1,
			"results": []map[string]any{{"id": 4, "name": "north-1", "status": "online"}},
		})
	}))

	page, err := sdt.NewService(client).ByStatus(context.Background(), "online")
	require.NoError(t, err)
	require.Equal(t, "online", gotStatus)
	require.Len(t, page.Items, 1)
	require.Equal(t, api.ID("4"), page.Items[0].ID)
}

func TestService_HealthAndMonitoring(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sdt/4/health/":
			apitest.WriteJSON(w, http.StatusOK, map[string]any{"id": 4, "healthy": true, "cpu_percent": 12.5})
		case "/sdt/monitoring/":
			apitest.WriteJSON(w, http.StatusOK, map[string]any{"total": 10, "online": 8, "offline": 2})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	svc := sdt.NewService(client)

	health, err := svc.Health(context.Background(), "4")
	require.NoError(t, err)
	require.True(t, health.Healthy)
	require.InDelta(t, 12.5, health.CPUPercent, 0.001)

	mon, err := svc.Monitoring(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, mon.Total)
	require.Equal(t, 2, mon.Offline)

	_, err = svc.Status(context.Background(), "99")
	require.True(t, api.IsNotFound(err))
}
