package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tiffinbox/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.GatewayConfig{
		BaseURL:        baseURL,
		KeyID:          "key_id",
		KeySecret:      "key_secret",
		RequestTimeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestClient_CreateOrder_Success(t *testing.T) {
	var gotPath string
	var gotReq CreateOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:          "order_abc",
			AmountMinor: gotReq.AmountMinor,
			Currency:    gotReq.Currency,
			Status:      OrderStatusCreated,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		AmountMinor: 52000,
		Currency:    "INR",
		Receipt:     "rcpt-1",
		Notes:       map[string]string{"address": "12 MG Road"},
	})

	require.NoError(t, err)
	assert.Equal(t, "/orders", gotPath)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(52000), order.AmountMinor)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, OrderStatusCreated, order.Status)
	assert.Equal(t, int64(52000), gotReq.AmountMinor)
	assert.Equal(t, "12 MG Road", gotReq.Notes["address"])
}

func TestClient_CreateOrder_GatewayRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"authentication failed"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		AmountMinor: 1000,
		Currency:    "INR",
	})

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_CreateOrder_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{AmountMinor: 1000})

	assert.Error(t, err)
}
