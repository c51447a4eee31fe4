package dto

import (
	"time"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// CustomerCreateRequest is the registration payload. Server-assigned
// fields are not accepted as input.
type CustomerCreateRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Validate reports every violated field.
func (r CustomerCreateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	checkRequiredString(fe, "name", r.Name, 1, 100)
	checkRequiredString(fe, "phone", r.Phone, 10, 20)
	checkEmail(fe, "email", r.Email)
	checkRequiredString(fe, "address", r.Address, 1, 255)
	checkRequiredString(fe, "password", r.Password, 6, 0)
	return fe
}

// CustomerUpdateRequest carries partial updates; nil means leave unchanged.
type CustomerUpdateRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
}

// Validate checks only the fields present.
func (r CustomerUpdateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.Name != nil {
		checkRequiredString(fe, "name", *r.Name, 1, 100)
	}
	if r.Phone != nil {
		checkRequiredString(fe, "phone", *r.Phone, 10, 20)
	}
	if r.Email != nil {
		checkEmail(fe, "email", *r.Email)
	}
	if r.Address != nil {
		checkRequiredString(fe, "address", *r.Address, 1, 255)
	}
	if r.Password != nil {
		checkRequiredString(fe, "password", *r.Password, 6, 0)
	}
	return fe
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports missing credentials.
func (r LoginRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	checkEmail(fe, "email", r.Email)
	if r.Password == "" {
		fe.add("password", "is required")
	}
	return fe
}

// CustomerResponse is the outward shape; the password hash never leaves
// the service.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomerResponse maps the domain model to its response shape.
func NewCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCustomerResponses maps a list of customers.
func NewCustomerResponses(customers []domain.Customer) []CustomerResponse {
	result := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		result = append(result, NewCustomerResponse(&customers[i]))
	}
	return result
}

// LoginResponse returns the issued token with its subject.
type LoginResponse struct {
	Token      string    `json:"auth_token"`
	ExpiresAt  time.Time `json:"expires_at"`
	CustomerID int64     `json:"customer_id"`
}

// CustomerTicketResponse is one entry of the my-tickets listing.
type CustomerTicketResponse struct {
	TicketID    int64      `json:"ticket_id"`
	VehicleID   int64      `json:"vehicle_id"`
	Vehicle     string     `json:"vehicle"`
	DateIn      time.Time  `json:"date_in"`
	DateOut     *time.Time `json:"date_out"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	TotalCost   float64    `json:"total_cost"`
	Mechanics   []string   `json:"mechanics"`
}

// NewCustomerTicketResponses maps annotated tickets for the listing.
func NewCustomerTicketResponses(tickets []domain.CustomerTicket) []CustomerTicketResponse {
	result := make([]CustomerTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		names := t.MechanicNames
		if names == nil {
			names = []string{}
		}
		result = append(result, CustomerTicketResponse{
			TicketID:    t.Ticket.ID,
			VehicleID:   t.Ticket.VehicleID,
			Vehicle:     t.VehicleLabel,
			DateIn:      t.Ticket.DateIn,
			DateOut:     t.Ticket.DateOut,
			Description: t.Ticket.Description,
			Status:      string(t.Ticket.Status),
			TotalCost:   t.Ticket.TotalCost,
			Mechanics:   names,
		})
	}
	return result
}
