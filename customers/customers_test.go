package customers_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/customers"
	"github.com/jrsteele09/isp-console/internal/apitest"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	err := customers.Validate(customers.Customer{})
	var fe apperrors.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "name")
	require.Contains(t, fe, "phone")

	require.NoError(t, customers.Validate(customers.Customer{Name: "Acme", Email: "ops@acme.test"}))
}

func TestService_CreateRejectsInvalidWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))

	_, err := customers.NewService(client).Create(context.Background(), customers.Customer{})
	require.Error(t, err)
	require.Zero(t, hits.Load())
}

func TestService_SearchAndSubscriptions(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/customers/search/":
			assert.Equal(t, "acme", r.URL.Query().Get("q"))
			apitest.WriteJSON(w, http.StatusOK, []map[string]any{{"id": 1, "name": "Acme"}})
		case "/customers/1/subscriptions/":
			apitest.WriteJSON(w, http.StatusOK, map[string]any{
				"count":   1,
				"results": []map[string]any{{"id": 9, "plan": "fibre-100", "price": 49.5}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	svc := customers.NewService(client)

	found, err := svc.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	require.Equal(t, "Acme", found.Items[0].Name)

	subs, err := svc.Subscriptions(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, 1, subs.Count)
	require.Equal(t, "fibre-100", subs.Items[0].Plan)
}

func TestService_UpdateWrapsBackendError(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apitest.WriteJSON(w, http.StatusBadRequest, map[string]any{"message": "account number taken"})
	}))

	_, err := customers.NewService(client).Update(context.Background(), "3", customers.Customer{Name: "Acme", Phone: "555"})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, api.StatusCode(err))
	require.Equal(t, "account number taken", api.Message(err, "fallback"))
}
