package domain

import "time"

// TicketStatus enumerates the ticket lifecycle states.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ValidTicketStatus reports whether s is one of the enumerated states.
func ValidTicketStatus(s string) bool {
	switch TicketStatus(s) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// ServiceTicket records work performed on a vehicle. DateIn is assigned by
// the server at creation and never changes afterwards.
type ServiceTicket struct {
	ID          int64
	VehicleID   int64
	DateIn      time.Time
	DateOut     *time.Time
	Description string
	Status      TicketStatus
	TotalCost   float64
	UpdatedAt   time.Time
	Mechanics   []Mechanic
}

// TicketPart is one line of the quantity-bearing ticket/part association.
type TicketPart struct {
	TicketID int64
	PartID   int64
	Name     string
	Price    float64
	Quantity int
}

// Subtotal is the line cost for this part.
func (p TicketPart) Subtotal() float64 {
	return p.Price * float64(p.Quantity)
}

// CustomerTicket is a ticket annotated for the my-tickets listing.
type CustomerTicket struct {
	Ticket        ServiceTicket
	VehicleLabel  string
	MechanicNames []string
}
