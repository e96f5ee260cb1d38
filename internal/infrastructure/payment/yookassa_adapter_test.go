package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kavara/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYooKassaConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *YooKassaConfig
		wantErr error
	}{
		{
			name: "valid config",
			config: &YooKassaConfig{
				ShopID:    "123456",
				SecretKey: "test_secret",
				ReturnURL: "https://example.com/return",
			},
			wantErr: nil,
		},
		{
			name: "missing shop ID",
			config: &YooKassaConfig{
				SecretKey: "test_secret",
				ReturnURL: "https://example.com/return",
			},
			wantErr: ErrYooKassaMissingShopID,
		},
		{
			name: "missing secret key",
			config: &YooKassaConfig{
				ShopID:    "123456",
				ReturnURL: "https://example.com/return",
			},
			wantErr: ErrYooKassaMissingSecretKey,
		},
		{
			name: "missing return URL",
			config: &YooKassaConfig{
				ShopID:    "123456",
				SecretKey: "test_secret",
			},
			wantErr: ErrYooKassaMissingReturnURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestYooKassaAdapter_CreatePayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, yookassaPaymentsPath, r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotence-Key"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "123456", user)
		assert.Equal(t, "test_secret", pass)

		var req yookassaCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1990.00", req.Amount.Value)
		assert.Equal(t, "RUB", req.Amount.Currency)
		assert.True(t, req.Capture)
		assert.Equal(t, "KV-2026-0001", req.Metadata["order_number"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(yookassaPayment{
			ID:     "2d9e1b2c-000f-5000-8000-1b1f5f2e4a11",
			Status: "pending",
			Amount: req.Amount,
			Confirmation: &yookassaConfirmation{
				Type: "redirect",
				URL:  "https://yookassa.ru/checkout/payments/2d9e1b2c",
			},
		})
	}))
	defer server.Close()

	adapter, err := NewYooKassaAdapter(&YooKassaConfig{
		ShopID:    "123456",
		SecretKey: "test_secret",
		ReturnURL: "https://example.com/return",
		BaseURL:   server.URL,
	})
	require.NoError(t, err)

	resp, err := adapter.CreatePayment(context.Background(), &payment.CreatePaymentRequest{
		OrderID:     "0f0f0f0f-0000-0000-0000-000000000001",
		OrderNumber: "KV-2026-0001",
		Amount:      decimal.NewFromInt(1990),
		Description: "Order KV-2026-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "2d9e1b2c-000f-5000-8000-1b1f5f2e4a11", resp.PaymentID)
	assert.Equal(t, payment.StatusPending, resp.Status)
	assert.Equal(t, "https://yookassa.ru/checkout/payments/2d9e1b2c", resp.ConfirmationURL)
}

func TestYooKassaAdapter_CreatePayment_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(yookassaErrorResponse{
			Code:        "invalid_request",
			Description: "Invalid amount",
		})
	}))
	defer server.Close()

	adapter, err := NewYooKassaAdapter(&YooKassaConfig{
		ShopID:    "123456",
		SecretKey: "test_secret",
		ReturnURL: "https://example.com/return",
		BaseURL:   server.URL,
	})
	require.NoError(t, err)

	_, err = adapter.CreatePayment(context.Background(), &payment.CreatePaymentRequest{
		Amount: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestYooKassaAdapter_GetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(yookassaPayment{
			ID:     "pay-1",
			Status: "succeeded",
			Paid:   true,
		})
	}))
	defer server.Close()

	adapter, err := NewYooKassaAdapter(&YooKassaConfig{
		ShopID:    "123456",
		SecretKey: "test_secret",
		ReturnURL: "https://example.com/return",
		BaseURL:   server.URL,
	})
	require.NoError(t, err)

	resp, err := adapter.GetPayment(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSucceeded, resp.Status)
}

func TestParseNotification(t *testing.T) {
	t.Run("parses a succeeded event", func(t *testing.T) {
		body := []byte(`{
			"type": "notification",
			"event": "payment.succeeded",
			"object": {"id": "pay-1", "status": "succeeded", "paid": true}
		}`)

		n, err := ParseNotification(body)
		require.NoError(t, err)
		assert.Equal(t, "payment.succeeded:pay-1", n.ID)
		assert.Equal(t, "pay-1", n.PaymentID)
		assert.Equal(t, payment.StatusSucceeded, n.Status)
	})

	t.Run("rejects a body without payment id", func(t *testing.T) {
		_, err := ParseNotification([]byte(`{"type":"notification","event":"payment.succeeded","object":{}}`))
		assert.Error(t, err)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		_, err := ParseNotification([]byte(`{not json`))
		assert.Error(t, err)
	})
}
