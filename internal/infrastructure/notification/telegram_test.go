package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotifier(t *testing.T, serverURL string) *TelegramNotifier {
	t.Helper()
	n, err := NewTelegramNotifier(config.TelegramConfig{
		Enabled:     true,
		BotToken:    "123:token",
		AdminChatID: 42,
	}, zap.NewNop())
	require.NoError(t, err)
	n.baseURL = serverURL
	return n
}

func newNotifierOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("KV-2026-00007", 555, "Daria", decimal.NewFromInt(3200))
	require.NoError(t, err)
	o.Phone = "+7 900 000-00-00"
	return o
}

func TestNewTelegramNotifier_RequiresToken(t *testing.T) {
	_, err := NewTelegramNotifier(config.TelegramConfig{Enabled: true}, zap.NewNop())
	assert.ErrorIs(t, err, ErrTelegramMissingToken)
}

func TestTelegramNotifier_NotifyNewOrder(t *testing.T) {
	var got sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer server.Close()

	n := newTestNotifier(t, server.URL)
	err := n.NotifyNewOrder(context.Background(), newNotifierOrder(t))

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ChatID)
	assert.Contains(t, got.Text, "KV-2026-00007")
	assert.Contains(t, got.Text, "Daria")
	assert.Contains(t, got.Text, "3200.00")
}

func TestTelegramNotifier_NotifyOrderPaid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer server.Close()

	n := newTestNotifier(t, server.URL)
	assert.NoError(t, n.NotifyOrderPaid(context.Background(), newNotifierOrder(t)))
}

func TestTelegramNotifier_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(apiResponse{OK: false, Description: "chat not found"})
	}))
	defer server.Close()

	n := newTestNotifier(t, server.URL)
	err := n.NotifyOrderCancelled(context.Background(), newNotifierOrder(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}
