package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Status is the provider-side payment state
type Status string

const (
	StatusPending           Status = "pending"
	StatusWaitingForCapture Status = "waiting_for_capture"
	StatusSucceeded         Status = "succeeded"
	StatusCanceled          Status = "canceled"
)

// CreatePaymentRequest describes a payment to open with the provider
type CreatePaymentRequest struct {
	OrderID     string
	OrderNumber string
	Amount      decimal.Decimal
	Currency    string
	Description string
	ReturnURL   string
}

// CreatePaymentResponse carries the provider identifiers for the order
type CreatePaymentResponse struct {
	PaymentID       string
	ConfirmationURL string
	Status          Status
}

// Notification is a provider webhook event, already verified and parsed
type Notification struct {
	// ID uniquely identifies the delivery for deduplication.
	ID        string
	Event     string
	PaymentID string
	Status    Status
}

// Gateway is the payment provider boundary
type Gateway interface {
	// CreatePayment opens a payment and returns the confirmation URL the
	// customer is redirected to.
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error)

	// GetPayment fetches the current provider-side state of a payment.
	GetPayment(ctx context.Context, paymentID string) (*CreatePaymentResponse, error)
}
