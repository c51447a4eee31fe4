package service

import (
	"context"

	"github.com/spec-kit/mechanic-shop/internal/domain"
	"github.com/spec-kit/mechanic-shop/internal/repository"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// MechanicService coordinates mechanic workflows.
type MechanicService struct {
	mechanics repository.MechanicRepository
}

// MechanicCreateInput describes the creation payload.
type MechanicCreateInput struct {
	Name    string
	Email   string
	Address string
	Phone   string
	Salary  float64
}

// MechanicUpdateInput carries partial updates; nil means leave unchanged.
type MechanicUpdateInput struct {
	Name    *string
	Email   *string
	Address *string
	Phone   *string
	Salary  *float64
}

// NewMechanicService constructs the service.
func NewMechanicService(mechanics repository.MechanicRepository) *MechanicService {
	return &MechanicService{mechanics: mechanics}
}

// Create registers a mechanic.
func (s *MechanicService) Create(ctx context.Context, input MechanicCreateInput) (*domain.Mechanic, error) {
	mechanic := &domain.Mechanic{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Phone:   input.Phone,
		Salary:  input.Salary,
	}
	if err := s.mechanics.Create(ctx, mechanic); err != nil {
		return nil, err
	}
	return mechanic, nil
}

// Get fetches a mechanic by id.
func (s *MechanicService) Get(ctx context.Context, id int64) (*domain.Mechanic, error) {
	mechanic, err := s.mechanics.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("mechanic", id)
		}
		return nil, err
	}
	return mechanic, nil
}

// List returns one page of mechanics with the unfiltered total.
func (s *MechanicService) List(ctx context.Context, limit, offset int) ([]domain.Mechanic, int64, error) {
	mechanics, err := s.mechanics.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.mechanics.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return mechanics, total, nil
}

// TopPerformers ranks every mechanic by the number of tickets they are
// linked to, most first, zero-ticket mechanics included.
func (s *MechanicService) TopPerformers(ctx context.Context) ([]domain.MechanicPerformance, error) {
	return s.mechanics.ListByTicketCount(ctx)
}

// Update applies a partial update.
func (s *MechanicService) Update(ctx context.Context, id int64, input MechanicUpdateInput) (*domain.Mechanic, error) {
	mechanic, err := s.mechanics.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("mechanic", id)
		}
		return nil, err
	}

	if input.Name != nil {
		mechanic.Name = *input.Name
	}
	if input.Email != nil {
		mechanic.Email = *input.Email
	}
	if input.Address != nil {
		mechanic.Address = *input.Address
	}
	if input.Phone != nil {
		mechanic.Phone = *input.Phone
	}
	if input.Salary != nil {
		mechanic.Salary = *input.Salary
	}

	if err := s.mechanics.Update(ctx, mechanic); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("mechanic", id)
		}
		return nil, err
	}
	return mechanic, nil
}

// Delete removes the mechanic. Their ticket associations drop via the
// join-table cascade; the tickets themselves survive.
func (s *MechanicService) Delete(ctx context.Context, id int64) error {
	if err := s.mechanics.Delete(ctx, id); err != nil {
		if util.IsNoRows(err) {
			return util.NewNotFound("mechanic", id)
		}
		return err
	}
	return nil
}
