package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kavara/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for catalog products.
// The inventory column is JSONB; SQL NULL means stock is not tracked.
// Slug is stored as NULL when unset so the unique index ignores it.
type ProductModel struct {
	BaseModel
	Name        string                `gorm:"not null;index"`
	Slug        *string               `gorm:"uniqueIndex"`
	Description string                `gorm:"type:text"`
	Price       decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Category    string                `gorm:"index"`
	ImageURL    string
	Active      bool                  `gorm:"not null;index"`
	Inventory   catalog.SizeInventory `gorm:"type:jsonb"`
	DeletedAt   gorm.DeletedAt        `gorm:"index"`
}

// TableName returns the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Slug:        derefSlug(m.Slug),
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		Active:      m.Active,
		Inventory:   m.Inventory,
	}
}

// FromDomain populates the persistence model from a domain product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Slug = nullableSlug(p.Slug)
	m.Description = p.Description
	m.Price = p.Price
	m.Category = p.Category
	m.ImageURL = p.ImageURL
	m.Active = p.Active
	m.Inventory = p.Inventory
}

// BoxModel is the persistence model for curated boxes.
type BoxModel struct {
	BaseModel
	Name        string                `gorm:"not null;index"`
	Slug        *string               `gorm:"uniqueIndex"`
	Description string                `gorm:"type:text"`
	Contents    string                `gorm:"type:text"`
	Price       decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	ImageURL    string
	Active      bool                  `gorm:"not null;index"`
	Inventory   catalog.SizeInventory `gorm:"type:jsonb"`
	DeletedAt   gorm.DeletedAt        `gorm:"index"`
}

// TableName returns the table name for BoxModel
func (BoxModel) TableName() string {
	return "boxes"
}

// ToDomain converts the persistence model to a domain box
func (m *BoxModel) ToDomain() *catalog.Box {
	return &catalog.Box{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Slug:        derefSlug(m.Slug),
		Description: m.Description,
		Contents:    m.Contents,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Active:      m.Active,
		Inventory:   m.Inventory,
	}
}

// FromDomain populates the persistence model from a domain box
func (m *BoxModel) FromDomain(b *catalog.Box) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.Slug = nullableSlug(b.Slug)
	m.Description = b.Description
	m.Contents = b.Contents
	m.Price = b.Price
	m.ImageURL = b.ImageURL
	m.Active = b.Active
	m.Inventory = b.Inventory
}

func nullableSlug(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefSlug(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
