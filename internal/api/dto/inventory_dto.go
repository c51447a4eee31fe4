package dto

import (
	"time"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// PartCreateRequest is the creation payload.
type PartCreateRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

// Validate reports every violated field.
func (r PartCreateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	checkRequiredString(fe, "name", r.Name, 1, 100)
	if r.Price == nil {
		fe.add("price", "is required")
	} else {
		checkNonNegative(fe, "price", *r.Price)
	}
	return fe
}

// PartUpdateRequest carries partial updates; nil means leave unchanged.
type PartUpdateRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// Validate checks only the fields present.
func (r PartUpdateRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.Name != nil {
		checkRequiredString(fe, "name", *r.Name, 1, 100)
	}
	if r.Price != nil {
		checkNonNegative(fe, "price", *r.Price)
	}
	return fe
}

// PartResponse is the outward shape.
type PartResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPartResponse maps the domain model to its response shape.
func NewPartResponse(p *domain.Part) PartResponse {
	return PartResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPartResponses maps a list of parts.
func NewPartResponses(parts []domain.Part) []PartResponse {
	result := make([]PartResponse, 0, len(parts))
	for i := range parts {
		result = append(result, NewPartResponse(&parts[i]))
	}
	return result
}
