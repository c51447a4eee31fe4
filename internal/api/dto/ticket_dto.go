package dto

import (
	"time"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// TicketCreateRequest is the creation payload. date_in is server-assigned
// and not accepted as input.
type TicketCreateRequest struct {
	VehicleID   int64    `json:"vehicle_id"`
	Description string   `json:"description"`
	Status      *string  `json:"status"`
	TotalCost   *float64 `json:"total_cost"`
}

// Validate reports every violated field.
func (r TicketCreateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.VehicleID <= 0 {
		fe.add("vehicle_id", "is required")
	}
	checkRequiredString(fe, "description", r.Description, 1, 0)
	if r.Status != nil && !domain.ValidTicketStatus(*r.Status) {
		fe.add("status", "must be one of: Open, In Progress, Closed")
	}
	if r.TotalCost != nil {
		checkNonNegative(fe, "total_cost", *r.TotalCost)
	}
	return fe
}

// TicketUpdateRequest carries partial updates; nil means leave unchanged.
type TicketUpdateRequest struct {
	VehicleID   *int64     `json:"vehicle_id"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DateOut     *time.Time `json:"date_out"`
	TotalCost   *float64   `json:"total_cost"`
}

// Validate checks only the fields present.
func (r TicketUpdateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.VehicleID != nil && *r.VehicleID <= 0 {
		fe.add("vehicle_id", "must be a positive id")
	}
	if r.Description != nil {
		checkRequiredString(fe, "description", *r.Description, 1, 0)
	}
	if r.Status != nil && !domain.ValidTicketStatus(*r.Status) {
		fe.add("status", "must be one of: Open, In Progress, Closed")
	}
	if r.TotalCost != nil {
		checkNonNegative(fe, "total_cost", *r.TotalCost)
	}
	return fe
}

// EditMechanicsRequest batches mechanic removals and additions.
type EditMechanicsRequest struct {
	RemoveIDs []int64 `json:"remove_ids"`
	AddIDs    []int64 `json:"add_ids"`
}

// AddPartRequest attaches a part to a ticket.
type AddPartRequest struct {
	PartID   int64 `json:"part_id"`
	Quantity *int  `json:"quantity"`
}

// Validate reports every violated field.
func (r AddPartRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.PartID <= 0 {
		fe.add("part_id", "is required")
	}
	if r.Quantity != nil && *r.Quantity < 1 {
		fe.add("quantity", "must be at least 1")
	}
	return fe
}

// TicketResponse is the outward shape, with assigned mechanics nested.
type TicketResponse struct {
	ID          int64              `json:"id"`
	VehicleID   int64              `json:"vehicle_id"`
	DateIn      time.Time          `json:"date_in"`
	DateOut     *time.Time         `json:"date_out"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	TotalCost   float64            `json:"total_cost"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Mechanics   []MechanicResponse `json:"mechanics"`
}

// NewTicketResponse maps the domain model to its response shape.
func NewTicketResponse(t *domain.ServiceTicket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		VehicleID:   t.VehicleID,
		DateIn:      t.DateIn,
		DateOut:     t.DateOut,
		Description: t.Description,
		Status:      string(t.Status),
		TotalCost:   t.TotalCost,
		UpdatedAt:   t.UpdatedAt,
		Mechanics:   NewMechanicResponses(t.Mechanics),
	}
}

// NewTicketResponses maps a list of tickets.
func NewTicketResponses(tickets []domain.ServiceTicket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, NewTicketResponse(&tickets[i]))
	}
	return result
}

// MechanicRef names a mechanic touched by a batch edit.
type MechanicRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EditMechanicsResponse reports the committed subset of a batch edit
// alongside per-id warnings.
type EditMechanicsResponse struct {
	Ticket   TicketResponse `json:"service_ticket"`
	Removed  []MechanicRef  `json:"removed_mechanics"`
	Added    []MechanicRef  `json:"added_mechanics"`
	Warnings []string       `json:"warnings,omitempty"`
}

// TicketPartLine is one part line with its computed subtotal.
type TicketPartLine struct {
	PartID   int64   `json:"part_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// TicketPartsResponse is the full part listing for a ticket with the
// grand total.
type TicketPartsResponse struct {
	TicketID       int64            `json:"ticket_id"`
	Count          int              `json:"count"`
	Parts          []TicketPartLine `json:"parts"`
	TotalPartsCost float64          `json:"total_parts_cost"`
}

// NewTicketPartsResponse maps part lines and computes subtotals and total.
func NewTicketPartsResponse(ticketID int64, lines []domain.TicketPart) TicketPartsResponse {
	parts := make([]TicketPartLine, 0, len(lines))
	var total float64
	for _, line := range lines {
		subtotal := line.Subtotal()
		parts = append(parts, TicketPartLine{
			PartID:   line.PartID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
		total += subtotal
	}
	return TicketPartsResponse{
		TicketID:       ticketID,
		Count:          len(parts),
		Parts:          parts,
		TotalPartsCost: total,
	}
}
