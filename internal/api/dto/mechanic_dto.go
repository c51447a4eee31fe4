package dto

import (
	"time"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// MechanicCreateRequest is the creation payload.
type MechanicCreateRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Salary  *float64 `json:"salary"`
}

// Validate reports every violated field.
func (r MechanicCreateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	checkRequiredString(fe, "name", r.Name, 1, 100)
	checkEmail(fe, "email", r.Email)
	checkRequiredString(fe, "address", r.Address, 1, 255)
	checkRequiredString(fe, "phone", r.Phone, 10, 20)
	if r.Salary == nil {
		fe.add("salary", "is required")
	} else {
		checkNonNegative(fe, "salary", *r.Salary)
	}
	return fe
}

// MechanicUpdateRequest carries partial updates; nil means leave unchanged.
type MechanicUpdateRequest struct {
	Name    *string  `json:"name"`
	Email   *string  `json:"email"`
	Address *string  `json:"address"`
	Phone   *string  `json:"phone"`
	Salary  *float64 `json:"salary"`
}

// Validate checks only the fields present.
func (r MechanicUpdateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.Name != nil {
		checkRequiredString(fe, "name", *r.Name, 1, 100)
	}
	if r.Email != nil {
		checkEmail(fe, "email", *r.Email)
	}
	if r.Address != nil {
		checkRequiredString(fe, "address", *r.Address, 1, 255)
	}
	if r.Phone != nil {
		checkRequiredString(fe, "phone", *r.Phone, 10, 20)
	}
	if r.Salary != nil {
		checkNonNegative(fe, "salary", *r.Salary)
	}
	return fe
}

// MechanicResponse is the outward shape.
type MechanicResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Salary    float64   `json:"salary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMechanicResponse maps the domain model to its response shape.
func NewMechanicResponse(m *domain.Mechanic) MechanicResponse {
	return MechanicResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Address:   m.Address,
		Phone:     m.Phone,
		Salary:    m.Salary,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewMechanicResponses maps a list of mechanics.
func NewMechanicResponses(mechanics []domain.Mechanic) []MechanicResponse {
	result := make([]MechanicResponse, 0, len(mechanics))
	for i := range mechanics {
		result = append(result, NewMechanicResponse(&mechanics[i]))
	}
	return result
}

// MechanicPerformanceResponse annotates a mechanic with their ticket count.
type MechanicPerformanceResponse struct {
	MechanicResponse
	TicketCount int64 `json:"ticket_count"`
}

// NewMechanicPerformanceResponses maps the top-performers listing.
func NewMechanicPerformanceResponses(perfs []domain.MechanicPerformance) []MechanicPerformanceResponse {
	result := make([]MechanicPerformanceResponse, 0, len(perfs))
	for i := range perfs {
		result = append(result, MechanicPerformanceResponse{
			MechanicResponse: NewMechanicResponse(&perfs[i].Mechanic),
			TicketCount:      perfs[i].TicketCount,
		})
	}
	return result
}
