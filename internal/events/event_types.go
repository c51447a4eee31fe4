package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCustomerRegistered EventType = "customer_registered"
	EventTicketCreated      EventType = "ticket_created"
	EventTicketDeleted      EventType = "ticket_deleted"
	EventMechanicAssigned   EventType = "mechanic_assigned"
	EventMechanicRemoved    EventType = "mechanic_removed"
	EventPartAdded          EventType = "part_added"
	EventPartRemoved        EventType = "part_removed"
)

// AllEventTypes lists every type, for subscribers that want the full stream.
var AllEventTypes = []EventType{
	EventCustomerRegistered,
	EventTicketCreated,
	EventTicketDeleted,
	EventMechanicAssigned,
	EventMechanicRemoved,
	EventPartAdded,
	EventPartRemoved,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CustomerRegisteredPayload payload.
type CustomerRegisteredPayload struct {
	CustomerID int64  `json:"customer_id"`
	Email      string `json:"email"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID  int64  `json:"ticket_id"`
	VehicleID int64  `json:"vehicle_id"`
	Status    string `json:"status"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	TicketID int64 `json:"ticket_id"`
}

// MechanicAssignmentPayload payload for assign and remove events.
type MechanicAssignmentPayload struct {
	TicketID   int64 `json:"ticket_id"`
	MechanicID int64 `json:"mechanic_id"`
}

// PartAssignmentPayload payload for part add and remove events. Quantity
// carries the line quantity after the change; zero on removal.
type PartAssignmentPayload struct {
	TicketID int64 `json:"ticket_id"`
	PartID   int64 `json:"part_id"`
	Quantity int   `json:"quantity,omitempty"`
}
