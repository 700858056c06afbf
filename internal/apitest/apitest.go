// Package apitest builds an api.Client against a scripted backend for
// service tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/isp-console/api"
	storagerepofake "github.com/jrsteele09/isp-console/storage/repofake"
	"github.com/jrsteele09/isp-console/tokenstore"
	"github.com/stretchr/testify/require"
)

// AccessToken is the bearer every client from NewClient sends.
const AccessToken = "test-access"

var fastRetry = api.RetryPolicy{
	QueryAttempts:    3,
	MutationAttempts: 2,
	InitialInterval:  time.Millisecond,
	MaxInterval:      2 * time.Millisecond,
}

// NewClient starts handler on an httptest server and returns a logged in
// client pointed at it.
func NewClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := tokenstore.New(storagerepofake.NewFakeStorageRepo())
	require.NoError(t, store.Save(tokenstore.Pair{Access: AccessToken, Refresh: "test-refresh"}, false))

	client, err := api.New(server.URL, store, api.WithRetryPolicy(fastRetry))
	require.NoError(t, err)
	return client
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeBody reads the request body into a generic map.
func DecodeBody(r *http.Request) map[string]any {
	out := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&out)
	return out
}
