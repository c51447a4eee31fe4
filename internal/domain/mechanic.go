package domain

import "time"

// Mechanic works service tickets through the ticket/mechanic association.
type Mechanic struct {
	ID        int64
	Name      string
	Email     string
	Address   string
	Phone     string
	Salary    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MechanicPerformance pairs a mechanic with the number of tickets linked
// to them, including zero.
type MechanicPerformance struct {
	Mechanic
	TicketCount int64
}
