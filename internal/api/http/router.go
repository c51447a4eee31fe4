package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mechanic-shop/internal/api/http/handlers"
	"github.com/spec-kit/mechanic-shop/internal/auth"
	"github.com/spec-kit/mechanic-shop/internal/cache"
	"github.com/spec-kit/mechanic-shop/internal/config"
	"github.com/spec-kit/mechanic-shop/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Customers      *handlers.CustomersHandler
	Vehicles       *handlers.VehiclesHandler
	Mechanics      *handlers.MechanicsHandler
	Tickets        *handlers.TicketsHandler
	Inventory      *handlers.InventoryHandler
	AuthMiddleware *auth.AuthMiddleware
	Limiter        *ratelimit.Limiter
	Cache          *cache.ResponseCache
	CacheTTL       config.CacheConfig
}

// RegisterRoutes wires HTTP routes with their rate-limit class and cache
// policy. Health probes bypass both.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	limit := cfg.Limiter.Middleware
	cached := cfg.Cache.Middleware
	requireAuth := cfg.AuthMiddleware.Handle

	customers := app.Group("/customers")
	customers.Post("/", limit(ratelimit.ClassCreate), cfg.Customers.Register)
	customers.Post("/login", limit(ratelimit.ClassLogin), cfg.Customers.Login)
	customers.Get("/", cached(cfg.CacheTTL.ListTTL()), cfg.Customers.List)
	customers.Get("/my-tickets", requireAuth, cfg.Customers.MyTickets)
	customers.Get("/:id", cached(cfg.CacheTTL.ItemTTL()), cfg.Customers.Get)
	customers.Put("/:id", limit(ratelimit.ClassUpdate), requireAuth, cfg.Customers.Update)
	customers.Delete("/:id", limit(ratelimit.ClassDelete), requireAuth, cfg.Customers.Delete)

	vehicles := app.Group("/vehicles")
	vehicles.Post("/", limit(ratelimit.ClassCreate), cfg.Vehicles.Create)
	vehicles.Get("/", cached(cfg.CacheTTL.ListTTL()), cfg.Vehicles.List)
	vehicles.Get("/customer/:customer_id", cached(cfg.CacheTTL.ListTTL()), cfg.Vehicles.ListByCustomer)
	vehicles.Get("/:id", cached(cfg.CacheTTL.ItemTTL()), cfg.Vehicles.Get)
	vehicles.Put("/:id", limit(ratelimit.ClassUpdate), cfg.Vehicles.Update)
	vehicles.Delete("/:id", limit(ratelimit.ClassDelete), cfg.Vehicles.Delete)

	mechanics := app.Group("/mechanics")
	mechanics.Post("/", limit(ratelimit.ClassCreate), cfg.Mechanics.Create)
	mechanics.Get("/", cached(cfg.CacheTTL.ListTTL()), cfg.Mechanics.List)
	mechanics.Get("/top-performers", cached(cfg.CacheTTL.ListTTL()), cfg.Mechanics.TopPerformers)
	mechanics.Get("/:id", cached(cfg.CacheTTL.ItemTTL()), cfg.Mechanics.Get)
	mechanics.Put("/:id", limit(ratelimit.ClassUpdate), cfg.Mechanics.Update)
	mechanics.Delete("/:id", limit(ratelimit.ClassDelete), cfg.Mechanics.Delete)

	tickets := app.Group("/service-tickets")
	tickets.Post("/", limit(ratelimit.ClassCreate), cfg.Tickets.Create)
	tickets.Get("/", cached(cfg.CacheTTL.ListTTL()), cfg.Tickets.List)
	tickets.Get("/:id", cached(cfg.CacheTTL.ItemTTL()), cfg.Tickets.Get)
	tickets.Put("/:id", limit(ratelimit.ClassUpdate), cfg.Tickets.Update)
	tickets.Delete("/:id", limit(ratelimit.ClassDelete), cfg.Tickets.Delete)
	tickets.Put("/:id/assign-mechanic/:mechanic_id", limit(ratelimit.ClassAssign), cfg.Tickets.AssignMechanic)
	tickets.Put("/:id/remove-mechanic/:mechanic_id", limit(ratelimit.ClassAssign), cfg.Tickets.RemoveMechanic)
	tickets.Put("/:id/edit", limit(ratelimit.ClassAssign), cfg.Tickets.EditMechanics)
	tickets.Post("/:id/add-part", limit(ratelimit.ClassAssign), cfg.Tickets.AddPart)
	tickets.Delete("/:id/remove-part/:part_id", limit(ratelimit.ClassAssign), cfg.Tickets.RemovePart)
	tickets.Get("/:id/parts", cached(cfg.CacheTTL.ShortTTL()), cfg.Tickets.ListParts)

	inventory := app.Group("/inventory")
	inventory.Post("/", limit(ratelimit.ClassCreate), cfg.Inventory.Create)
	inventory.Get("/", cached(cfg.CacheTTL.ListTTL()), cfg.Inventory.List)
	inventory.Get("/search", cached(cfg.CacheTTL.ShortTTL()), cfg.Inventory.Search)
	inventory.Get("/:id", cached(cfg.CacheTTL.ItemTTL()), cfg.Inventory.Get)
	inventory.Put("/:id", limit(ratelimit.ClassUpdate), cfg.Inventory.Update)
	inventory.Delete("/:id", limit(ratelimit.ClassDelete), cfg.Inventory.Delete)
}
