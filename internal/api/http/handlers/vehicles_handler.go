package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mechanic-shop/internal/api/dto"
	"github.com/spec-kit/mechanic-shop/internal/service"
)

// VehiclesHandler exposes vehicle endpoints.
type VehiclesHandler struct {
	vehicles *service.VehicleService
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicles *service.VehicleService) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicles}
}

// Create handles POST /vehicles.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	var req dto.VehicleCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	vehicle, err := h.vehicles.Create(c.UserContext(), service.VehicleCreateInput{
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewVehicleResponse(vehicle))
}

// List handles GET /vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	params := pageParams(c)
	vehicles, total, err := h.vehicles.List(c.UserContext(), params.PerPage, params.Offset())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"vehicles":   dto.NewVehicleResponses(vehicles),
		"pagination": dto.NewPagination(params, total),
	})
}

// ListByCustomer handles GET /vehicles/customer/:customer_id.
func (h *VehiclesHandler) ListByCustomer(c *fiber.Ctx) error {
	customerID, err := parseID(c, "customer_id")
	if err != nil {
		return err
	}
	params := pageParams(c)
	vehicles, total, err := h.vehicles.ListByCustomer(c.UserContext(), customerID, params.PerPage, params.Offset())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"customer_id": customerID,
		"vehicles":    dto.NewVehicleResponses(vehicles),
		"pagination":  dto.NewPagination(params, total),
	})
}

// Get handles GET /vehicles/:id.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	vehicle, err := h.vehicles.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVehicleResponse(vehicle))
}

// Update handles PUT /vehicles/:id.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.VehicleUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	vehicle, err := h.vehicles.Update(c.UserContext(), id, service.VehicleUpdateInput{
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVehicleResponse(vehicle))
}

// Delete handles DELETE /vehicles/:id.
func (h *VehiclesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.vehicles.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "vehicle deleted"})
}
