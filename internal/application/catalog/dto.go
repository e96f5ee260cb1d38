package catalog

import (
	"time"

	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Inventory   map[string]int  `json:"inventory"`
}

// UpdateProductRequest is the payload for updating a product's catalog fields
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"image_url"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// CreateBoxRequest is the payload for creating a box
type CreateBoxRequest struct {
	Name        string          `json:"name" binding:"required"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Contents    string          `json:"contents"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
	Inventory   map[string]int  `json:"inventory"`
}

// UpdateBoxRequest is the payload for updating a box's catalog fields
type UpdateBoxRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Contents    string           `json:"contents"`
	ImageURL    string           `json:"image_url"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// ReplaceInventoryRequest overwrites an entity's full per-size stock map.
// This is the operator correction path; it does not produce audit rows.
type ReplaceInventoryRequest struct {
	Inventory map[string]int `json:"inventory" binding:"required"`
}

// ProductResponse is the read model for a product
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Active      bool            `json:"active"`
	Inventory   map[string]int  `json:"inventory,omitempty"`
	Tracked     bool            `json:"tracked"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BoxResponse is the read model for a box
type BoxResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug,omitempty"`
	Description string          `json:"description,omitempty"`
	Contents    string          `json:"contents,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Active      bool            `json:"active"`
	Inventory   map[string]int  `json:"inventory,omitempty"`
	Tracked     bool            `json:"tracked"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse is a paginated list of products
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// BoxListResponse is a paginated list of boxes
type BoxListResponse struct {
	Boxes    []BoxResponse `json:"boxes"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ToProductResponse converts a domain product to its read model
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.GetID().String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		Inventory:   p.Inventory,
		Tracked:     p.Inventory.Tracked(),
		CreatedAt:   p.GetCreatedAt(),
		UpdatedAt:   p.GetUpdatedAt(),
	}
}

// ToBoxResponse converts a domain box to its read model
func ToBoxResponse(b *catalog.Box) BoxResponse {
	return BoxResponse{
		ID:          b.GetID().String(),
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		Contents:    b.Contents,
		Price:       b.Price,
		ImageURL:    b.ImageURL,
		Active:      b.Active,
		Inventory:   b.Inventory,
		Tracked:     b.Inventory.Tracked(),
		CreatedAt:   b.GetCreatedAt(),
		UpdatedAt:   b.GetUpdatedAt(),
	}
}
