package omiseapi

import (
	"context"
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

func TestGetChargeSuccessful(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charges/chrg_001", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "skey_test", user)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chrg_001",
			"status": "successful",
			"paid": true,
			"amount": 130000,
			"currency": "thb",
			"metadata": {"order_number": "TT000000000000001"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "skey_test", 5*time.Second)
	result, err := client.GetCharge(context.Background(), "chrg_001")
	require.NoError(t, err)
	assert.Equal(t, "chrg_001", result.ChargeID)
	assert.Equal(t, etpayment.GatewayStatusSuccessful, result.Status)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(1300)), "amount = %s", result.Amount)
	assert.Equal(t, "TT000000000000001", result.OrderNumber)
}

func TestGetChargeAuthorizedButUnpaidIsPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chrg_002", "status": "successful", "paid": false, "amount": 130000}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "skey_test", 5*time.Second)
	result, err := client.GetCharge(context.Background(), "chrg_002")
	require.NoError(t, err)
	assert.Equal(t, etpayment.GatewayStatusPending, result.Status)
}

func TestGetChargeFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chrg_003", "status": "failed", "failure_code": "insufficient_fund"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "skey_test", 5*time.Second)
	result, err := client.GetCharge(context.Background(), "chrg_003")
	require.NoError(t, err)
	assert.Equal(t, etpayment.GatewayStatusFailed, result.Status)
}

func TestGetChargeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "skey_test", 5*time.Second)
	_, err := client.GetCharge(context.Background(), "chrg_missing")
	assert.ErrorIs(t, err, errorx.ErrChargeNotFound)
}

func TestGetChargeServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "skey_test", 5*time.Second)
	_, err := client.GetCharge(context.Background(), "chrg_001")
	assert.ErrorIs(t, err, errorx.ErrGatewayUnavailable)
}

func TestGetChargeNetworkErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 端口已关闭

	client := NewClient(srv.URL, "skey_test", time.Second)
	_, err := client.GetCharge(context.Background(), "chrg_001")
	assert.ErrorIs(t, err, errorx.ErrGatewayUnavailable)
}
