package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/payment"
)

const (
	yookassaAPIBaseURL      = "https://api.yookassa.ru"
	yookassaPaymentsPath    = "/v3/payments"
	yookassaPaymentPathFmt  = "/v3/payments/%s"
	yookassaDefaultCurrency = "RUB"
)

// YooKassaAdapter implements the payment Gateway for YooKassa
type YooKassaAdapter struct {
	config     *YooKassaConfig
	httpClient *http.Client
}

// NewYooKassaAdapter creates a new YooKassa adapter
func NewYooKassaAdapter(config *YooKassaConfig) (*YooKassaAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &YooKassaAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// CreatePayment opens a payment and returns the confirmation URL
func (a *YooKassaAdapter) CreatePayment(ctx context.Context, req *payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = a.config.Currency
	}
	if currency == "" {
		currency = yookassaDefaultCurrency
	}

	body := yookassaCreateRequest{
		Amount: yookassaAmount{
			Value:    req.Amount.StringFixed(2),
			Currency: currency,
		},
		Capture: true,
		Confirmation: yookassaConfirmation{
			Type:      "redirect",
			ReturnURL: a.config.ReturnURL,
		},
		Description: req.Description,
		Metadata: map[string]string{
			"order_id":     req.OrderID,
			"order_number": req.OrderNumber,
		},
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("yookassa: failed to marshal request: %w", err)
	}

	// The Idempotence-Key header makes provider-side retries safe.
	respBody, err := a.doRequest(ctx, http.MethodPost, yookassaPaymentsPath, bodyBytes, uuid.NewString())
	if err != nil {
		return nil, err
	}

	var p yookassaPayment
	if err := json.Unmarshal(respBody, &p); err != nil {
		return nil, fmt.Errorf("yookassa: failed to parse response: %w", err)
	}

	resp := &payment.CreatePaymentResponse{
		PaymentID: p.ID,
		Status:    payment.Status(p.Status),
	}
	if p.Confirmation != nil {
		resp.ConfirmationURL = p.Confirmation.URL
	}
	return resp, nil
}

// GetPayment fetches the current state of a payment
func (a *YooKassaAdapter) GetPayment(ctx context.Context, paymentID string) (*payment.CreatePaymentResponse, error) {
	path := fmt.Sprintf(yookassaPaymentPathFmt, paymentID)
	respBody, err := a.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var p yookassaPayment
	if err := json.Unmarshal(respBody, &p); err != nil {
		return nil, fmt.Errorf("yookassa: failed to parse response: %w", err)
	}

	resp := &payment.CreatePaymentResponse{
		PaymentID: p.ID,
		Status:    payment.Status(p.Status),
	}
	if p.Confirmation != nil {
		resp.ConfirmationURL = p.Confirmation.URL
	}
	return resp, nil
}

// ParseNotification decodes and normalizes a webhook body
func ParseNotification(body []byte) (*payment.Notification, error) {
	var n yookassaNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("yookassa: failed to parse notification: %w", err)
	}
	if n.Object.ID == "" {
		return nil, fmt.Errorf("yookassa: notification carries no payment id")
	}
	return &payment.Notification{
		ID:        n.Event + ":" + n.Object.ID,
		Event:     n.Event,
		PaymentID: n.Object.ID,
		Status:    payment.Status(n.Object.Status),
	}, nil
}

func (a *YooKassaAdapter) baseURL() string {
	if a.config.BaseURL != "" {
		return a.config.BaseURL
	}
	return yookassaAPIBaseURL
}

func (a *YooKassaAdapter) doRequest(ctx context.Context, method, path string, body []byte, idempotenceKey string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("yookassa: failed to build request: %w", err)
	}
	req.SetBasicAuth(a.config.ShopID, a.config.SecretKey)
	req.Header.Set("Content-Type", "application/json")
	if idempotenceKey != "" {
		req.Header.Set("Idempotence-Key", idempotenceKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yookassa: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yookassa: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr yookassaErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Description != "" {
			return nil, fmt.Errorf("yookassa: %s (%s)", apiErr.Description, apiErr.Code)
		}
		return nil, fmt.Errorf("yookassa: unexpected status %d", resp.StatusCode)
	}
	return respBody, nil
}

// Ensure YooKassaAdapter implements the gateway boundary
var _ payment.Gateway = (*YooKassaAdapter)(nil)
