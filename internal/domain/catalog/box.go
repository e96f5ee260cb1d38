package catalog

import (
	"strings"

	"github.com/kavara/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Box is a curated bundle of items sold as one unit at a fixed price.
// Its stock is tracked on the box itself, not on the bundled products.
type Box struct {
	shared.BaseEntity
	Name        string
	Slug        string
	Description string
	// Contents is the marketing description of what the box includes.
	Contents  string
	Price     decimal.Decimal
	ImageURL  string
	Active    bool
	Inventory SizeInventory
}

// NewBox creates a new box with validation
func NewBox(name string, price decimal.Decimal) (*Box, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Box name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Box price cannot be negative")
	}
	return &Box{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
		Active:     true,
	}, nil
}

// UpdateDetails updates the mutable catalog fields
func (b *Box) UpdateDetails(name, description, contents, imageURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Box name cannot be empty")
	}
	b.Name = name
	b.Description = description
	b.Contents = contents
	b.ImageURL = imageURL
	b.Touch()
	return nil
}

// ChangePrice sets a new price
func (b *Box) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Box price cannot be negative")
	}
	b.Price = price
	b.Touch()
	return nil
}

// ReplaceInventory overwrites the whole inventory map (operator path,
// see Product.ReplaceInventory).
func (b *Box) ReplaceInventory(inv SizeInventory) error {
	for size, qty := range inv {
		if qty < 0 {
			return shared.NewDomainError("INVALID_INPUT", "Inventory quantity for size "+size+" cannot be negative")
		}
	}
	b.Inventory = inv
	b.Touch()
	return nil
}

// Activate makes the box visible in the storefront
func (b *Box) Activate() {
	b.Active = true
	b.Touch()
}

// Deactivate hides the box from the storefront
func (b *Box) Deactivate() {
	b.Active = false
	b.Touch()
}

// AsSellable returns the kind-generic settlement view of the box
func (b *Box) AsSellable() Sellable {
	return Sellable{
		Kind:      KindBox,
		ID:        b.ID,
		Name:      b.Name,
		Inventory: b.Inventory,
	}
}
