package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles catalog management for products.
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	p.Slug = strings.TrimSpace(req.Slug)
	p.Description = req.Description
	p.Category = req.Category
	p.ImageURL = req.ImageURL

	if req.Inventory != nil {
		if err := p.ReplaceInventory(catalog.SizeInventory(req.Inventory)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", p.GetID().String()),
		zap.String("name", p.Name))

	resp := ToProductResponse(p)
	return &resp, nil
}

// Update modifies the catalog fields of an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.UpdateDetails(req.Name, req.Description, req.Category, req.ImageURL); err != nil {
		return nil, err
	}
	if req.Price != nil {
		if err := p.ChangePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	resp := ToProductResponse(p)
	return &resp, nil
}

// ReplaceInventory overwrites the product's full stock map. This is the
// operator correction path and produces no audit rows; settlement-driven
// changes go through the settlement engine instead.
func (s *ProductService) ReplaceInventory(ctx context.Context, id uuid.UUID, req ReplaceInventoryRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.ReplaceInventory(catalog.SizeInventory(req.Inventory)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	s.logger.Info("product inventory replaced",
		zap.String("product_id", p.GetID().String()),
		zap.Int("sizes", len(req.Inventory)))

	resp := ToProductResponse(p)
	return &resp, nil
}

// Get returns one product by id
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// GetBySlug returns one product by its storefront slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	p, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// List returns products, paginated
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*ProductListResponse, error) {
	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return &ProductListResponse{
		Products: out,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}
