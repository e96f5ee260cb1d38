package order

import (
	"time"

	"github.com/kavara/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the checkout payload.
// Any combination of box, product and cart may be present.
type CreateOrderRequest struct {
	TelegramUserID int64  `json:"telegram_user_id" binding:"required"`
	CustomerName   string `json:"customer_name" binding:"required"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Comment        string `json:"comment"`

	BoxID        string `json:"box_id"`
	ProductID    string `json:"product_id"`
	SelectedSize string `json:"selected_size"`
	CartItems    string `json:"cart_items"`

	TotalPrice decimal.Decimal `json:"total_price" binding:"required"`
}

// OrderResponse is the read model for an order
type OrderResponse struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"order_number"`
	TelegramUserID int64           `json:"telegram_user_id"`
	CustomerName   string          `json:"customer_name"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	BoxID          *string         `json:"box_id,omitempty"`
	ProductID      *string         `json:"product_id,omitempty"`
	SelectedSize   string          `json:"selected_size,omitempty"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         string          `json:"status"`
	PaymentID      string          `json:"payment_id,omitempty"`
	PaymentURL     string          `json:"payment_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderListResponse is a paginated list of orders
type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ToOrderResponse converts a domain order to its read model
func ToOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.GetID().String(),
		OrderNumber:    o.OrderNumber,
		TelegramUserID: o.TelegramUserID,
		CustomerName:   o.CustomerName,
		Phone:          o.Phone,
		Address:        o.Address,
		Comment:        o.Comment,
		SelectedSize:   o.SelectedSize,
		TotalPrice:     o.TotalPrice,
		Status:         o.Status.String(),
		PaymentID:      o.PaymentID,
		PaymentURL:     o.PaymentURL,
		CreatedAt:      o.GetCreatedAt(),
		UpdatedAt:      o.GetUpdatedAt(),
	}
	if o.BoxID != nil {
		id := o.BoxID.String()
		resp.BoxID = &id
	}
	if o.ProductID != nil {
		id := o.ProductID.String()
		resp.ProductID = &id
	}
	return resp
}

// ToOrderListResponse converts a page of domain orders
func ToOrderListResponse(orders []order.Order, total int64, page, pageSize int) OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return OrderListResponse{Orders: out, Total: total, Page: page, PageSize: pageSize}
}
