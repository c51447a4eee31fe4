package dto

import (
	"fmt"
	"time"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// Earliest model year accepted.
const minVehicleYear = 1886

// VehicleCreateRequest is the creation payload.
type VehicleCreateRequest struct {
	CustomerID   int64   `json:"customer_id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	VIN          string  `json:"vin"`
	LicensePlate *string `json:"license_plate"`
}

// Validate reports every violated field.
func (r VehicleCreateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.CustomerID <= 0 {
		fe.add("customer_id", "is required")
	}
	checkRequiredString(fe, "make", r.Make, 1, 50)
	checkRequiredString(fe, "model", r.Model, 1, 50)
	checkYear(fe, r.Year)
	checkVIN(fe, r.VIN)
	if r.LicensePlate != nil {
		checkLength(fe, "license_plate", *r.LicensePlate, 0, 20)
	}
	return fe
}

// VehicleUpdateRequest carries partial updates; nil means leave unchanged.
type VehicleUpdateRequest struct {
	CustomerID   *int64  `json:"customer_id"`
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	VIN          *string `json:"vin"`
	LicensePlate *string `json:"license_plate"`
}

// Validate checks only the fields present.
func (r VehicleUpdateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.CustomerID != nil && *r.CustomerID <= 0 {
		fe.add("customer_id", "must be a positive id")
	}
	if r.Make != nil {
		checkRequiredString(fe, "make", *r.Make, 1, 50)
	}
	if r.Model != nil {
		checkRequiredString(fe, "model", *r.Model, 1, 50)
	}
	if r.Year != nil {
		checkYear(fe, *r.Year)
	}
	if r.VIN != nil {
		checkVIN(fe, *r.VIN)
	}
	if r.LicensePlate != nil {
		checkLength(fe, "license_plate", *r.LicensePlate, 0, 20)
	}
	return fe
}

func checkVIN(fe FieldErrors, vin string) {
	if len(vin) != 17 {
		fe.add("vin", "must be exactly 17 characters")
	}
}

func checkYear(fe FieldErrors, year int) {
	maxYear := time.Now().Year() + 1
	if year < minVehicleYear || year > maxYear {
		fe.add("year", fmt.Sprintf("must be between %d and %d", minVehicleYear, maxYear))
	}
}

// VehicleResponse is the outward shape.
type VehicleResponse struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	VIN          string    `json:"vin"`
	LicensePlate *string   `json:"license_plate"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewVehicleResponse maps the domain model to its response shape.
func NewVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		CustomerID:   v.CustomerID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		VIN:          v.VIN,
		LicensePlate: v.LicensePlate,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// NewVehicleResponses maps a list of vehicles.
func NewVehicleResponses(vehicles []domain.Vehicle) []VehicleResponse {
	result := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		result = append(result, NewVehicleResponse(&vehicles[i]))
	}
	return result
}
