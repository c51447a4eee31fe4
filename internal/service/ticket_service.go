package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spec-kit/mechanic-shop/internal/domain"
	"github.com/spec-kit/mechanic-shop/internal/events"
	"github.com/spec-kit/mechanic-shop/internal/repository"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// TicketService coordinates service-ticket workflows, including mechanic
// assignments and part lines.
type TicketService struct {
	tickets    repository.TicketRepository
	vehicles   repository.VehicleRepository
	mechanics  repository.MechanicRepository
	parts      repository.InventoryRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	VehicleRepo   repository.VehicleRepository
	MechanicRepo  repository.MechanicRepository
	InventoryRepo repository.InventoryRepository
	Dispatcher    events.Dispatcher
}

// TicketCreateInput describes the creation payload.
type TicketCreateInput struct {
	VehicleID   int64
	Description string
	Status      *string
	TotalCost   *float64
}

// TicketUpdateInput carries partial updates; nil means leave unchanged.
// DateIn is fixed at creation and deliberately absent.
type TicketUpdateInput struct {
	VehicleID   *int64
	Description *string
	Status      *string
	DateOut     *time.Time
	TotalCost   *float64
}

// EditMechanicsResult reports the committed subset of a batch edit. Each
// id that could not be applied contributes a warning instead of failing
// the whole request.
type EditMechanicsResult struct {
	Ticket   *domain.ServiceTicket
	Removed  []domain.Mechanic
	Added    []domain.Mechanic
	Warnings []string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		vehicles:   deps.VehicleRepo,
		mechanics:  deps.MechanicRepo,
		parts:      deps.InventoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a ticket against an existing vehicle. Status defaults to
// Open and total cost to zero.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.ServiceTicket, error) {
	if _, err := s.vehicles.GetByID(ctx, input.VehicleID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("vehicle", input.VehicleID)
		}
		return nil, err
	}

	ticket := &domain.ServiceTicket{
		VehicleID:   input.VehicleID,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
	}
	if input.Status != nil {
		ticket.Status = domain.TicketStatus(*input.Status)
	}
	if input.TotalCost != nil {
		ticket.TotalCost = *input.TotalCost
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if util.IsForeignKeyViolation(err) {
			return nil, util.NewNotFound("vehicle", input.VehicleID)
		}
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:  ticket.ID,
			VehicleID: ticket.VehicleID,
			Status:    string(ticket.Status),
		},
	})
	return ticket, nil
}

// Get fetches a ticket with its assigned mechanics.
func (s *TicketService) Get(ctx context.Context, id int64) (*domain.ServiceTicket, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachMechanics(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns one page of tickets, each with its assigned mechanics, and
// the unfiltered total.
func (s *TicketService) List(ctx context.Context, limit, offset int) ([]domain.ServiceTicket, int64, error) {
	tickets, err := s.tickets.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range tickets {
		if err := s.attachMechanics(ctx, &tickets[i]); err != nil {
			return nil, 0, err
		}
	}
	total, err := s.tickets.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// Update applies a partial update, revalidating the vehicle when it
// changes. date_in stays fixed.
func (s *TicketService) Update(ctx context.Context, id int64, input TicketUpdateInput) (*domain.ServiceTicket, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VehicleID != nil && *input.VehicleID != ticket.VehicleID {
		if _, err := s.vehicles.GetByID(ctx, *input.VehicleID); err != nil {
			if util.IsNoRows(err) {
				return nil, util.NewNotFound("vehicle", *input.VehicleID)
			}
			return nil, err
		}
		ticket.VehicleID = *input.VehicleID
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.Status != nil {
		ticket.Status = domain.TicketStatus(*input.Status)
	}
	if input.DateOut != nil {
		ticket.DateOut = input.DateOut
	}
	if input.TotalCost != nil {
		ticket.TotalCost = *input.TotalCost
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("service ticket", id)
		}
		return nil, err
	}
	if err := s.attachMechanics(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Delete removes the ticket and, via cascade, its mechanic and part lines.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if util.IsNoRows(err) {
			return util.NewNotFound("service ticket", id)
		}
		return err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventTicketDeleted,
		Payload: events.TicketDeletedPayload{TicketID: id},
	})
	return nil
}

// AssignMechanic links a mechanic to a ticket. Assigning the same pair
// twice is a conflict.
func (s *TicketService) AssignMechanic(ctx context.Context, ticketID, mechanicID int64) (*domain.ServiceTicket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if _, err := s.mechanics.GetByID(ctx, mechanicID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("mechanic", mechanicID)
		}
		return nil, err
	}

	inserted, err := s.tickets.AssignMechanic(ctx, ticketID, mechanicID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, util.NewConflict(
			fmt.Sprintf("mechanic %d is already assigned to ticket %d", mechanicID, ticketID), nil)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventMechanicAssigned,
		Payload: events.MechanicAssignmentPayload{TicketID: ticketID, MechanicID: mechanicID},
	})

	if err := s.attachMechanics(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// RemoveMechanic unlinks a mechanic from a ticket. Removing a mechanic who
// was never assigned is an error, not a no-op.
func (s *TicketService) RemoveMechanic(ctx context.Context, ticketID, mechanicID int64) (*domain.ServiceTicket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	removed, err := s.tickets.RemoveMechanic(ctx, ticketID, mechanicID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, util.NewDomainError("NOT_FOUND",
			fmt.Sprintf("mechanic %d is not assigned to ticket %d", mechanicID, ticketID),
			http.StatusNotFound, nil)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventMechanicRemoved,
		Payload: events.MechanicAssignmentPayload{TicketID: ticketID, MechanicID: mechanicID},
	})

	if err := s.attachMechanics(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// EditMechanics applies removals then additions in one request. Ids that
// cannot be applied are collected as warnings while the rest commit.
func (s *TicketService) EditMechanics(ctx context.Context, ticketID int64, removeIDs, addIDs []int64) (*EditMechanicsResult, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	result := &EditMechanicsResult{
		Ticket:   ticket,
		Removed:  []domain.Mechanic{},
		Added:    []domain.Mechanic{},
		Warnings: []string{},
	}

	for _, id := range removeIDs {
		mechanic, err := s.mechanics.GetByID(ctx, id)
		if err != nil {
			if util.IsNoRows(err) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("mechanic with ID %d not found", id))
				continue
			}
			return nil, err
		}
		removed, err := s.tickets.RemoveMechanic(ctx, ticketID, id)
		if err != nil {
			return nil, err
		}
		if !removed {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("mechanic %d is not assigned to ticket %d", id, ticketID))
			continue
		}
		result.Removed = append(result.Removed, *mechanic)
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:    events.EventMechanicRemoved,
			Payload: events.MechanicAssignmentPayload{TicketID: ticketID, MechanicID: id},
		})
	}

	for _, id := range addIDs {
		mechanic, err := s.mechanics.GetByID(ctx, id)
		if err != nil {
			if util.IsNoRows(err) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("mechanic with ID %d not found", id))
				continue
			}
			return nil, err
		}
		inserted, err := s.tickets.AssignMechanic(ctx, ticketID, id)
		if err != nil {
			return nil, err
		}
		if !inserted {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("mechanic %d is already assigned to ticket %d", id, ticketID))
			continue
		}
		result.Added = append(result.Added, *mechanic)
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:    events.EventMechanicAssigned,
			Payload: events.MechanicAssignmentPayload{TicketID: ticketID, MechanicID: id},
		})
	}

	if err := s.attachMechanics(ctx, ticket); err != nil {
		return nil, err
	}
	return result, nil
}

// AddPart attaches a part to a ticket, accumulating quantity onto any
// existing line, and returns the part with the full updated listing.
func (s *TicketService) AddPart(ctx context.Context, ticketID, partID int64, quantity int) (*domain.Part, []domain.TicketPart, error) {
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, nil, err
	}
	part, err := s.parts.GetByID(ctx, partID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, nil, util.NewNotFound("part", partID)
		}
		return nil, nil, err
	}

	if err := s.tickets.UpsertPart(ctx, ticketID, partID, quantity); err != nil {
		if util.IsForeignKeyViolation(err) {
			return nil, nil, util.NewNotFound("part", partID)
		}
		return nil, nil, err
	}
	line, err := s.tickets.GetPartLine(ctx, ticketID, partID)
	if err != nil {
		return nil, nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventPartAdded,
		Payload: events.PartAssignmentPayload{TicketID: ticketID, PartID: partID, Quantity: line.Quantity},
	})
	lines, err := s.tickets.ListParts(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	return part, lines, nil
}

// RemovePart drops the whole part line regardless of quantity and returns
// the part with the remaining listing.
func (s *TicketService) RemovePart(ctx context.Context, ticketID, partID int64) (*domain.Part, []domain.TicketPart, error) {
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, nil, err
	}
	part, err := s.parts.GetByID(ctx, partID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, nil, util.NewNotFound("part", partID)
		}
		return nil, nil, err
	}

	removed, err := s.tickets.RemovePart(ctx, ticketID, partID)
	if err != nil {
		return nil, nil, err
	}
	if !removed {
		return nil, nil, util.NewDomainError("NOT_FOUND",
			fmt.Sprintf("part %d is not attached to ticket %d", partID, ticketID),
			http.StatusNotFound, nil)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventPartRemoved,
		Payload: events.PartAssignmentPayload{TicketID: ticketID, PartID: partID},
	})
	lines, err := s.tickets.ListParts(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	return part, lines, nil
}

// ListParts lists the part lines of an existing ticket.
func (s *TicketService) ListParts(ctx context.Context, ticketID int64) ([]domain.TicketPart, error) {
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.tickets.ListParts(ctx, ticketID)
}

func (s *TicketService) getTicket(ctx context.Context, id int64) (*domain.ServiceTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("service ticket", id)
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) attachMechanics(ctx context.Context, ticket *domain.ServiceTicket) error {
	mechanics, err := s.mechanics.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return err
	}
	ticket.Mechanics = mechanics
	return nil
}
