package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mechanic-shop/internal/api/dto"
	"github.com/spec-kit/mechanic-shop/internal/auth"
	"github.com/spec-kit/mechanic-shop/internal/service"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// CustomersHandler exposes customer account endpoints.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// Register handles POST /customers.
func (h *CustomersHandler) Register(c *fiber.Ctx) error {
	var req dto.CustomerCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	customer, err := h.customers.Register(c.UserContext(), service.CustomerCreateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCustomerResponse(customer))
}

// Login handles POST /customers/login.
func (h *CustomersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	customer, token, expiresAt, err := h.customers.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		CustomerID: customer.ID,
	})
}

// List handles GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	params := pageParams(c)
	customers, total, err := h.customers.List(c.UserContext(), params.PerPage, params.Offset())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"customers":  dto.NewCustomerResponses(customers),
		"pagination": dto.NewPagination(params, total),
	})
}

// Get handles GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Update handles PUT /customers/:id. Token-bound: only the account owner.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	authID, ok := auth.CustomerIDFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var req dto.CustomerUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); !fe.Empty() {
		return validationErr(fe)
	}

	customer, err := h.customers.Update(c.UserContext(), authID, id, service.CustomerUpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Delete handles DELETE /customers/:id. Token-bound: only the account owner.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	authID, ok := auth.CustomerIDFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.customers.Delete(c.UserContext(), authID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "customer deleted"})
}

// MyTickets handles GET /customers/my-tickets.
func (h *CustomersHandler) MyTickets(c *fiber.Ctx) error {
	authID, ok := auth.CustomerIDFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	customer, tickets, err := h.customers.MyTickets(c.UserContext(), authID)
	if err != nil {
		return err
	}
	items := dto.NewCustomerTicketResponses(tickets)
	return c.JSON(fiber.Map{
		"customer_id":   customer.ID,
		"customer_name": customer.Name,
		"count":         len(items),
		"tickets":       items,
	})
}
