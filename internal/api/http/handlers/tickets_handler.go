package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mechanic-shop/internal/api/dto"
	"github.com/spec-kit/mechanic-shop/internal/domain"
	"github.com/spec-kit/mechanic-shop/internal/service"
)

// TicketsHandler exposes service-ticket endpoints, including mechanic
// assignment and part-line operations.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// Create handles POST /service-tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.TicketCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	ticket, err := h.tickets.Create(c.UserContext(), service.TicketCreateInput{
		VehicleID:   req.VehicleID,
		Description: req.Description,
		Status:      req.Status,
		TotalCost:   req.TotalCost,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// List handles GET /service-tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	params := pageParams(c)
	tickets, total, err := h.tickets.List(c.UserContext(), params.PerPage, params.Offset())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"service_tickets": dto.NewTicketResponses(tickets),
		"pagination":      dto.NewPagination(params, total),
	})
}

// Get handles GET /service-tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Update handles PUT /service-tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TicketUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	ticket, err := h.tickets.Update(c.UserContext(), id, service.TicketUpdateInput{
		VehicleID:   req.VehicleID,
		Description: req.Description,
		Status:      req.Status,
		DateOut:     req.DateOut,
		TotalCost:   req.TotalCost,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Delete handles DELETE /service-tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "service ticket deleted"})
}

// AssignMechanic handles PUT /service-tickets/:id/assign-mechanic/:mechanic_id.
func (h *TicketsHandler) AssignMechanic(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	mechanicID, err := parseID(c, "mechanic_id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.AssignMechanic(c.UserContext(), ticketID, mechanicID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":        fmt.Sprintf("mechanic %d assigned to ticket %d", mechanicID, ticketID),
		"service_ticket": dto.NewTicketResponse(ticket),
	})
}

// RemoveMechanic handles PUT /service-tickets/:id/remove-mechanic/:mechanic_id.
func (h *TicketsHandler) RemoveMechanic(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	mechanicID, err := parseID(c, "mechanic_id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.RemoveMechanic(c.UserContext(), ticketID, mechanicID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":        fmt.Sprintf("mechanic %d removed from ticket %d", mechanicID, ticketID),
		"service_ticket": dto.NewTicketResponse(ticket),
	})
}

// EditMechanics handles PUT /service-tickets/:id/edit.
func (h *TicketsHandler) EditMechanics(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EditMechanicsRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	result, err := h.tickets.EditMechanics(c.UserContext(), ticketID, req.RemoveIDs, req.AddIDs)
	if err != nil {
		return err
	}
	return c.JSON(dto.EditMechanicsResponse{
		Ticket:   dto.NewTicketResponse(result.Ticket),
		Removed:  mechanicRefs(result.Removed),
		Added:    mechanicRefs(result.Added),
		Warnings: result.Warnings,
	})
}

// AddPart handles POST /service-tickets/:id/add-part.
func (h *TicketsHandler) AddPart(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AddPartRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	part, lines, err := h.tickets.AddPart(c.UserContext(), ticketID, req.PartID, quantity)
	if err != nil {
		return err
	}
	listing := dto.NewTicketPartsResponse(ticketID, lines)
	return c.JSON(fiber.Map{
		"message":          fmt.Sprintf("added %d x %s to ticket %d", quantity, part.Name, ticketID),
		"ticket_id":        listing.TicketID,
		"count":            listing.Count,
		"parts":            listing.Parts,
		"total_parts_cost": listing.TotalPartsCost,
	})
}

// RemovePart handles DELETE /service-tickets/:id/remove-part/:part_id.
func (h *TicketsHandler) RemovePart(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	partID, err := parseID(c, "part_id")
	if err != nil {
		return err
	}

	part, lines, err := h.tickets.RemovePart(c.UserContext(), ticketID, partID)
	if err != nil {
		return err
	}
	listing := dto.NewTicketPartsResponse(ticketID, lines)
	return c.JSON(fiber.Map{
		"message":          fmt.Sprintf("removed %s from ticket %d", part.Name, ticketID),
		"ticket_id":        listing.TicketID,
		"count":            listing.Count,
		"parts":            listing.Parts,
		"total_parts_cost": listing.TotalPartsCost,
	})
}

// ListParts handles GET /service-tickets/:id/parts.
func (h *TicketsHandler) ListParts(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	lines, err := h.tickets.ListParts(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketPartsResponse(ticketID, lines))
}

func mechanicRefs(mechanics []domain.Mechanic) []dto.MechanicRef {
	refs := make([]dto.MechanicRef, 0, len(mechanics))
	for _, m := range mechanics {
		refs = append(refs, dto.MechanicRef{ID: m.ID, Name: m.Name})
	}
	return refs
}
