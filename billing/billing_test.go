package billing_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/billing"
	"github.com/jrsteele09/isp-console/internal/apitest"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Invoices(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billing/invoices/", r.URL.Path)
		assert.Equal(t, "overdue", r.URL.Query().Get("status"))
		apitest.WriteJSON(w, http.StatusOK, map[string]any{
			"count":   2,
			"next":    "http://backend/billing/invoices/?page=2",
			"results": []map[string]any{{"id": 1, "amount": 10}, {"id": 2, "amount": 20}},
		})
	}))

	page, err := billing.NewService(client).Invoices(context.Background(), "overdue")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.True(t, page.HasNext())
	require.Equal(t, "2", page.NextCursor)
}

func TestService_ProcessPayment(t *testing.T) {
	var body map[string]any
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body = apitest.DecodeBody(r)
		apitest.WriteJSON(w, http.StatusCreated, map[string]any{"id": 77, "invoice": 5, "amount": 25})
	}))
	svc := billing.NewService(client)

	_, err := svc.ProcessPayment(context.Background(), billing.ProcessPaymentRequest{})
	var fe apperrors.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe, 3)
	require.Nil(t, body)

	payment, err := svc.ProcessPayment(context.Background(), billing.ProcessPaymentRequest{InvoiceID: "5", Amount: 25, Method: "card"})
	require.NoError(t, err)
	require.Equal(t, api.ID("77"), payment.ID)
	require.Equal(t, "card", body["method"])
}

func TestService_GenerateInvoiceRequiresCustomer(t *testing.T) {
	client := apitest.NewClient(t, http.NotFoundHandler())
	_, err := billing.NewService(client).GenerateInvoice(context.Background(), billing.GenerateInvoiceRequest{})
	require.Error(t, err)
}
