package domain

import "time"

// Part is a stocked inventory item attachable to service tickets.
type Part struct {
	ID        int64
	Name      string
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
