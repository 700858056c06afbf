package network_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/internal/apitest"
	"github.com/jrsteele09/isp-console/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Stats(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+apitest.AccessToken, r.Header.Get("Authorization"))
		apitest.WriteJSON(w, http.StatusOK, map[string]any{"active_connections": 120, "latency_ms": 8.5})
	}))

	stats, err := network.NewService(client).Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 120, stats.ActiveConnections)
	require.InDelta(t, 8.5, stats.Latency, 0.001)
}

func TestService_InterfacesServerError(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := network.NewService(client).Interfaces(context.Background())
	require.True(t, api.IsServerError(err))
}
