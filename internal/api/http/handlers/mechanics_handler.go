package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mechanic-shop/internal/api/dto"
	"github.com/spec-kit/mechanic-shop/internal/service"
)

// MechanicsHandler exposes mechanic endpoints.
type MechanicsHandler struct {
	mechanics *service.MechanicService
}

// NewMechanicsHandler constructs handler.
func NewMechanicsHandler(mechanics *service.MechanicService) *MechanicsHandler {
	return &MechanicsHandler{mechanics: mechanics}
}

// Create handles POST /mechanics.
func (h *MechanicsHandler) Create(c *fiber.Ctx) error {
	var req dto.MechanicCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	mechanic, err := h.mechanics.Create(c.UserContext(), service.MechanicCreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
		Salary:  *req.Salary,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewMechanicResponse(mechanic))
}

// List handles GET /mechanics.
func (h *MechanicsHandler) List(c *fiber.Ctx) error {
	params := pageParams(c)
	mechanics, total, err := h.mechanics.List(c.UserContext(), params.PerPage, params.Offset())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"mechanics":  dto.NewMechanicResponses(mechanics),
		"pagination": dto.NewPagination(params, total),
	})
}

// TopPerformers handles GET /mechanics/top-performers.
func (h *MechanicsHandler) TopPerformers(c *fiber.Ctx) error {
	perfs, err := h.mechanics.TopPerformers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"mechanics": dto.NewMechanicPerformanceResponses(perfs),
	})
}

// Get handles GET /mechanics/:id.
func (h *MechanicsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	mechanic, err := h.mechanics.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMechanicResponse(mechanic))
}

// Update handles PUT /mechanics/:id.
func (h *MechanicsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.MechanicUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	mechanic, err := h.mechanics.Update(c.UserContext(), id, service.MechanicUpdateInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
		Salary:  req.Salary,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMechanicResponse(mechanic))
}

// Delete handles DELETE /mechanics/:id.
func (h *MechanicsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.mechanics.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "mechanic deleted"})
}
