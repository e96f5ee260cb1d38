package catalog

import (
	"strings"

	"github.com/kavara/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a standalone sellable catalog item.
type Product struct {
	shared.BaseEntity
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	Active      bool
	// Inventory is the per-size stock ledger. Nil means stock is not
	// tracked and the product cannot be sold until an operator
	// configures it. Mutated only by the settlement engine.
	Inventory SizeInventory
}

// NewProduct creates a new product with validation
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
		Active:     true,
	}, nil
}

// UpdateDetails updates the mutable catalog fields
func (p *Product) UpdateDetails(name, description, category, imageURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.Category = category
	p.ImageURL = imageURL
	p.Touch()
	return nil
}

// ChangePrice sets a new price
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// ReplaceInventory overwrites the whole inventory map. This is the
// manual-correction path used by catalog management; it bypasses the
// settlement row lock, which the business accepts for operator edits.
func (p *Product) ReplaceInventory(inv SizeInventory) error {
	for size, qty := range inv {
		if qty < 0 {
			return shared.NewDomainError("INVALID_INPUT", "Inventory quantity for size "+size+" cannot be negative")
		}
	}
	p.Inventory = inv
	p.Touch()
	return nil
}

// Activate makes the product visible in the storefront
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

// AsSellable returns the kind-generic settlement view of the product
func (p *Product) AsSellable() Sellable {
	return Sellable{
		Kind:      KindProduct,
		ID:        p.ID,
		Name:      p.Name,
		Inventory: p.Inventory,
	}
}
