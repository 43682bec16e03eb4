package cashfree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smallbiznis/givehope/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		appID:     "app_test",
		secretKey: "secret_test",
		baseURL:   srv.URL,
		client:    srv.Client(),
	}
}

func TestCreateOrderSendsAuthHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "app_test", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret_test", r.Header.Get("x-client-secret"))
		assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "order_1", req.OrderID)
		assert.Equal(t, 103.0, req.OrderAmount)

		json.NewEncoder(w).Encode(Order{
			OrderID:          req.OrderID,
			OrderStatus:      OrderStatusActive,
			PaymentSessionID: "session_xyz",
		})
	}))
	defer srv.Close()

	order, err := newTestClient(srv).CreateOrder(context.Background(), CreateOrderRequest{
		OrderID:       "order_1",
		OrderAmount:   103,
		OrderCurrency: "INR",
	})
	require.NoError(t, err)
	assert.Equal(t, "session_xyz", order.PaymentSessionID)
}

func TestCreateOrderRejectsIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Order{OrderID: "order_1"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateOrder(context.Background(), CreateOrderRequest{OrderID: "order_1"})
	require.Error(t, err)
}

func TestGetOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetOrder(context.Background(), "order_missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGatewayErrorMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "authentication failed",
			"code":    "request_failed",
			"type":    "authentication_error",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListOrderPayments(context.Background(), "order_1")
	require.Error(t, err)
	assert.Equal(t, "authentication failed", err.Error())
}

func TestListOrderPayments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/order_1/payments", r.URL.Path)
		json.NewEncoder(w).Encode([]Payment{
			{
				CFPaymentID:    json.Number("5114910"),
				PaymentStatus:  PaymentStatusSuccess,
				PaymentMessage: "Transaction successful",
			},
		})
	}))
	defer srv.Close()

	payments, err := newTestClient(srv).ListOrderPayments(context.Background(), "order_1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, PaymentStatusSuccess, payments[0].PaymentStatus)
}

func TestUnconfiguredClientFailsFast(t *testing.T) {
	client := NewClient(config.GatewayConfig{})
	_, err := client.GetOrder(context.Background(), "order_1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
