package order

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a known lifecycle state
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for states with no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// allowedTransitions is the order status transition table.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusPaid, StatusProcessing, StatusCancelled},
	StatusPaid:       {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransitionTo reports whether s may move to the target status
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Order is a customer's checkout. It is immutable after creation except
// for its status; the set of line items it references never changes.
type Order struct {
	shared.BaseEntity
	OrderNumber    string
	TelegramUserID int64
	CustomerName   string
	Phone          string
	Address        string
	Comment        string

	// Exactly the sellable references to settle: a direct box, a direct
	// product, and/or a serialized cart, in any combination.
	BoxID        *uuid.UUID
	ProductID    *uuid.UUID
	SelectedSize string
	CartItems    string // raw JSON array of cart entries

	TotalPrice decimal.Decimal
	Status     Status

	// Payment reconciliation identifiers, set by the payment boundary.
	PaymentID  string
	PaymentURL string
}

// NewOrder creates a pending order with validation
func NewOrder(orderNumber string, telegramUserID int64, customerName string, totalPrice decimal.Decimal) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number cannot be empty")
	}
	if totalPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order total cannot be negative")
	}
	return &Order{
		BaseEntity:     shared.NewBaseEntity(),
		OrderNumber:    orderNumber,
		TelegramUserID: telegramUserID,
		CustomerName:   customerName,
		TotalPrice:     totalPrice,
		Status:         StatusPending,
	}, nil
}

// HasLineItems reports whether the order references anything to settle
func (o *Order) HasLineItems() bool {
	return o.BoxID != nil || o.ProductID != nil || strings.TrimSpace(o.CartItems) != ""
}

// TransitionTo moves the order to the target status, enforcing the
// transition table.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+target.String())
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}
	o.Status = target
	o.Touch()
	return nil
}

// MarkPaid records a successful payment signal
func (o *Order) MarkPaid() error {
	return o.TransitionTo(StatusPaid)
}

// Cancel moves the order to the cancelled state
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCancelled)
}

// IsCancelled reports whether the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// AttachPayment stores the payment provider identifiers
func (o *Order) AttachPayment(paymentID, paymentURL string) {
	o.PaymentID = paymentID
	o.PaymentURL = paymentURL
	o.Touch()
}
