package stripeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "sk_test", "https://shop.example.com/success", "https://shop.example.com/cancel", 5*time.Second)
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var req createSessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "payment", req.Mode)
		assert.Equal(t, "TT000000000000001", req.Metadata["order_number"])
		assert.Contains(t, req.SuccessURL, "order=TT000000000000001")

		w.Write([]byte(`{"id": "cs_001", "url": "https://pay.example.com/cs_001", "status": "open"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.CreateSession(context.Background(), &CreateSessionInput{
		OrderNumber: "TT000000000000001",
		Amount:      decimal.NewFromInt(1300),
		Currency:    "thb",
		LineItems: []LineItem{
			{Name: "ช่อกุหลาบ", UnitPrice: decimal.NewFromInt(1200), Quantity: 1},
			{Name: "ค่าจัดส่ง", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_001", result.SessionID)
	assert.Equal(t, "https://pay.example.com/cs_001", result.RedirectURL)
}

func TestGetSessionPaid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions/cs_001", r.URL.Path)
		w.Write([]byte(`{
			"id": "cs_001",
			"status": "complete",
			"payment_status": "paid",
			"payment_intent": "pi_001",
			"amount_total": 130000,
			"metadata": {"order_number": "TT000000000000001"}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.GetSession(context.Background(), "cs_001")
	require.NoError(t, err)
	assert.Equal(t, etpayment.GatewayStatusSuccessful, result.Status)
	assert.Equal(t, "pi_001", result.ChargeID)
	assert.Equal(t, "cs_001", result.SessionID)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(1300)))
	assert.Equal(t, "TT000000000000001", result.OrderNumber)
}

func TestGetSessionStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		body string
		want etpayment.GatewayStatus
	}{
		{"open unpaid", `{"id": "cs_1", "status": "open", "payment_status": "unpaid"}`, etpayment.GatewayStatusPending},
		{"complete unpaid", `{"id": "cs_1", "status": "complete", "payment_status": "unpaid"}`, etpayment.GatewayStatusPending},
		{"expired", `{"id": "cs_1", "status": "expired", "payment_status": "unpaid"}`, etpayment.GatewayStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			result, err := newTestClient(srv.URL).GetSession(context.Background(), "cs_1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Status)
		})
	}
}

func TestGetSessionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetSession(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, errorx.ErrSessionNotFound)
}

func TestGetSessionServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetSession(context.Background(), "cs_001")
	assert.ErrorIs(t, err, errorx.ErrGatewayUnavailable)
}
