package domain

import "time"

// Customer is the domain model for shop customers who own vehicles.
type Customer struct {
	ID           int64
	Name         string
	Phone        string
	Email        string
	Address      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
