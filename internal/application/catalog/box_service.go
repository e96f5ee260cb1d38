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

// BoxService handles catalog management for boxes.
type BoxService struct {
	boxRepo catalog.BoxRepository
	logger  *zap.Logger
}

// NewBoxService creates a new BoxService
func NewBoxService(boxRepo catalog.BoxRepository, logger *zap.Logger) *BoxService {
	return &BoxService{boxRepo: boxRepo, logger: logger}
}

// Create adds a new box to the catalog
func (s *BoxService) Create(ctx context.Context, req CreateBoxRequest) (*BoxResponse, error) {
	b, err := catalog.NewBox(req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	b.Slug = strings.TrimSpace(req.Slug)
	b.Description = req.Description
	b.Contents = req.Contents
	b.ImageURL = req.ImageURL

	if req.Inventory != nil {
		if err := b.ReplaceInventory(catalog.SizeInventory(req.Inventory)); err != nil {
			return nil, err
		}
	}

	if err := s.boxRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("saving box: %w", err)
	}

	s.logger.Info("box created",
		zap.String("box_id", b.GetID().String()),
		zap.String("name", b.Name))

	resp := ToBoxResponse(b)
	return &resp, nil
}

// Update modifies the catalog fields of an existing box
func (s *BoxService) Update(ctx context.Context, id uuid.UUID, req UpdateBoxRequest) (*BoxResponse, error) {
	b, err := s.boxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.UpdateDetails(req.Name, req.Description, req.Contents, req.ImageURL); err != nil {
		return nil, err
	}
	if req.Price != nil {
		if err := b.ChangePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			b.Activate()
		} else {
			b.Deactivate()
		}
	}

	if err := s.boxRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("saving box: %w", err)
	}

	resp := ToBoxResponse(b)
	return &resp, nil
}

// ReplaceInventory overwrites the box's full stock map (operator path,
// see ProductService.ReplaceInventory).
func (s *BoxService) ReplaceInventory(ctx context.Context, id uuid.UUID, req ReplaceInventoryRequest) (*BoxResponse, error) {
	b, err := s.boxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.ReplaceInventory(catalog.SizeInventory(req.Inventory)); err != nil {
		return nil, err
	}
	if err := s.boxRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("saving box: %w", err)
	}

	s.logger.Info("box inventory replaced",
		zap.String("box_id", b.GetID().String()),
		zap.Int("sizes", len(req.Inventory)))

	resp := ToBoxResponse(b)
	return &resp, nil
}

// Get returns one box by id
func (s *BoxService) Get(ctx context.Context, id uuid.UUID) (*BoxResponse, error) {
	b, err := s.boxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBoxResponse(b)
	return &resp, nil
}

// List returns boxes, paginated
func (s *BoxService) List(ctx context.Context, filter shared.Filter) (*BoxListResponse, error) {
	boxes, total, err := s.boxRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing boxes: %w", err)
	}
	out := make([]BoxResponse, 0, len(boxes))
	for i := range boxes {
		out = append(out, ToBoxResponse(&boxes[i]))
	}
	return &BoxListResponse{
		Boxes:    out,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Delete removes a box from the catalog
func (s *BoxService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.boxRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("box deleted", zap.String("box_id", id.String()))
	return nil
}
