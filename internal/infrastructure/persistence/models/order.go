package models

import (
	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for customer orders.
type OrderModel struct {
	BaseModel
	OrderNumber    string          `gorm:"uniqueIndex;not null"`
	TelegramUserID int64           `gorm:"index;not null"`
	CustomerName   string          `gorm:"not null"`
	Phone          string
	Address        string          `gorm:"type:text"`
	Comment        string          `gorm:"type:text"`
	BoxID          *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID      *uuid.UUID      `gorm:"type:uuid;index"`
	SelectedSize   string
	CartItems      string          `gorm:"type:text"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         string          `gorm:"index;not null"`
	PaymentID      string          `gorm:"index"`
	PaymentURL     string
}

// TableName returns the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain order
func (m *OrderModel) ToDomain() *order.Order {
	return &order.Order{
		BaseEntity:     m.BaseModel.ToDomain(),
		OrderNumber:    m.OrderNumber,
		TelegramUserID: m.TelegramUserID,
		CustomerName:   m.CustomerName,
		Phone:          m.Phone,
		Address:        m.Address,
		Comment:        m.Comment,
		BoxID:          m.BoxID,
		ProductID:      m.ProductID,
		SelectedSize:   m.SelectedSize,
		CartItems:      m.CartItems,
		TotalPrice:     m.TotalPrice,
		Status:         order.Status(m.Status),
		PaymentID:      m.PaymentID,
		PaymentURL:     m.PaymentURL,
	}
}

// FromDomain populates the persistence model from a domain order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.OrderNumber = o.OrderNumber
	m.TelegramUserID = o.TelegramUserID
	m.CustomerName = o.CustomerName
	m.Phone = o.Phone
	m.Address = o.Address
	m.Comment = o.Comment
	m.BoxID = o.BoxID
	m.ProductID = o.ProductID
	m.SelectedSize = o.SelectedSize
	m.CartItems = o.CartItems
	m.TotalPrice = o.TotalPrice
	m.Status = string(o.Status)
	m.PaymentID = o.PaymentID
	m.PaymentURL = o.PaymentURL
}
