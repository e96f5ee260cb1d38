package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const telegramAPIBaseURL = "https://api.telegram.org"

// ErrTelegramMissingToken is returned when the notifier is enabled
// without a bot token.
var ErrTelegramMissingToken = errors.New("telegram bot token is not configured")

// TelegramNotifier pushes order events to the shop admin chat through
// a Telegram bot. Delivery is best effort; callers log failures and
// move on, a lost notification never blocks an order.
type TelegramNotifier struct {
	botToken    string
	adminChatID int64
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewTelegramNotifier creates a new TelegramNotifier
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zap.Logger) (*TelegramNotifier, error) {
	if cfg.BotToken == "" {
		return nil, ErrTelegramMissingToken
	}
	return &TelegramNotifier{
		botToken:    cfg.BotToken,
		adminChatID: cfg.AdminChatID,
		baseURL:     telegramAPIBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger.Named("telegram"),
	}, nil
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NotifyNewOrder tells the admin chat about a freshly created order
func (n *TelegramNotifier) NotifyNewOrder(ctx context.Context, o *order.Order) error {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "Customer: %s\n", o.CustomerName)
	if o.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
	}
	fmt.Fprintf(&b, "Total: %s", o.TotalPrice.StringFixed(2))
	return n.sendMessage(ctx, b.String())
}

// NotifyOrderPaid tells the admin chat that payment arrived
func (n *TelegramNotifier) NotifyOrderPaid(ctx context.Context, o *order.Order) error {
	return n.sendMessage(ctx, fmt.Sprintf("Order %s is paid (%s)", o.OrderNumber, o.TotalPrice.StringFixed(2)))
}

// NotifyOrderCancelled tells the admin chat about a cancellation
func (n *TelegramNotifier) NotifyOrderCancelled(ctx context.Context, o *order.Order) error {
	return n.sendMessage(ctx, fmt.Sprintf("Order %s was cancelled", o.OrderNumber))
}

// sendMessage calls the Telegram Bot API sendMessage method
func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID: n.adminChatID,
		Text:   text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("telegram api returned status %d", resp.StatusCode)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram api error: %s", apiResp.Description)
	}

	n.logger.Debug("Telegram notification sent", zap.Int64("chat_id", n.adminChatID))
	return nil
}
