package service

import (
	"context"
	"strings"

	"github.com/spec-kit/mechanic-shop/internal/domain"
	"github.com/spec-kit/mechanic-shop/internal/repository"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// InventoryService coordinates inventory-part workflows.
type InventoryService struct {
	parts repository.InventoryRepository
}

// PartCreateInput describes the creation payload.
type PartCreateInput struct {
	Name  string
	Price float64
}

// PartUpdateInput carries partial updates; nil means leave unchanged.
type PartUpdateInput struct {
	Name  *string
	Price *float64
}

// NewInventoryService constructs the service.
func NewInventoryService(parts repository.InventoryRepository) *InventoryService {
	return &InventoryService{parts: parts}
}

// Create stocks a new part.
func (s *InventoryService) Create(ctx context.Context, input PartCreateInput) (*domain.Part, error) {
	part := &domain.Part{
		Name:  input.Name,
		Price: input.Price,
	}
	if err := s.parts.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// Get fetches a part by id.
func (s *InventoryService) Get(ctx context.Context, id int64) (*domain.Part, error) {
	part, err := s.parts.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("part", id)
		}
		return nil, err
	}
	return part, nil
}

// List returns one page of parts with the unfiltered total.
func (s *InventoryService) List(ctx context.Context, limit, offset int) ([]domain.Part, int64, error) {
	parts, err := s.parts.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.parts.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return parts, total, nil
}

// Search matches part names case-insensitively on a substring. An empty
// query is rejected rather than treated as match-all.
func (s *InventoryService) Search(ctx context.Context, query string, limit, offset int) ([]domain.Part, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, util.NewBadRequest("query parameter 'q' is required")
	}
	parts, err := s.parts.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.parts.CountSearch(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return parts, total, nil
}

// Update applies a partial update.
func (s *InventoryService) Update(ctx context.Context, id int64, input PartUpdateInput) (*domain.Part, error) {
	part, err := s.parts.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("part", id)
		}
		return nil, err
	}

	if input.Name != nil {
		part.Name = *input.Name
	}
	if input.Price != nil {
		part.Price = *input.Price
	}

	if err := s.parts.Update(ctx, part); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("part", id)
		}
		return nil, err
	}
	return part, nil
}

// Delete removes the part. Ticket lines referencing it drop via the
// join-table cascade.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.parts.Delete(ctx, id); err != nil {
		if util.IsNoRows(err) {
			return util.NewNotFound("part", id)
		}
		return err
	}
	return nil
}
