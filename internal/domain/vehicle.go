package domain

import (
	"fmt"
	"time"
)

// Vehicle belongs to a customer and carries a globally unique VIN.
type Vehicle struct {
	ID           int64
	CustomerID   int64
	Make         string
	Model        string
	Year         int
	VIN          string
	LicensePlate *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Label renders the human-readable form used in ticket listings.
func (v *Vehicle) Label() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}
