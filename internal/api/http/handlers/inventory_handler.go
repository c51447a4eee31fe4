package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mechanic-shop/internal/api/dto"
	"github.com/spec-kit/mechanic-shop/internal/service"
)

// InventoryHandler exposes inventory-part endpoints.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req dto.PartCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	part, err := h.inventory.Create(c.UserContext(), service.PartCreateInput{
		Name:  req.Name,
		Price: *req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPartResponse(part))
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	params := pageParams(c)
	parts, total, err := h.inventory.List(c.UserContext(), params.PerPage, params.Offset())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"parts":      dto.NewPartResponses(parts),
		"pagination": dto.NewPagination(params, total),
	})
}

// Search handles GET /inventory/search?q=.
func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	params := pageParams(c)
	parts, total, err := h.inventory.Search(c.UserContext(), c.Query("q"), params.PerPage, params.Offset())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"query":      c.Query("q"),
		"parts":      dto.NewPartResponses(parts),
		"pagination": dto.NewPagination(params, total),
	})
}

// Get handles GET /inventory/:id.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	part, err := h.inventory.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPartResponse(part))
}

// Update handles PUT /inventory/:id.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.PartUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	part, err := h.inventory.Update(c.UserContext(), id, service.PartUpdateInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPartResponse(part))
}

// Delete handles DELETE /inventory/:id.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.inventory.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "part deleted"})
}
