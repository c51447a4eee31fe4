package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/mechanic-shop/internal/api/http"
	"github.com/spec-kit/mechanic-shop/internal/api/http/handlers"
	"github.com/spec-kit/mechanic-shop/internal/auth"
	"github.com/spec-kit/mechanic-shop/internal/cache"
	"github.com/spec-kit/mechanic-shop/internal/config"
	"github.com/spec-kit/mechanic-shop/internal/events"
	"github.com/spec-kit/mechanic-shop/internal/observability"
	"github.com/spec-kit/mechanic-shop/internal/persistence"
	"github.com/spec-kit/mechanic-shop/internal/ratelimit"
	"github.com/spec-kit/mechanic-shop/internal/repository"
	"github.com/spec-kit/mechanic-shop/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditSubscriber(dispatcher, logger)

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	mechanicRepo := repository.NewMechanicRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		TicketRepo:   ticketRepo,
		Tokens:       tokens,
		Dispatcher:   dispatcher,
		BcryptCost:   cfg.Auth.BcryptCost,
	})
	vehicleService := service.NewVehicleService(service.VehicleDependencies{
		VehicleRepo:  vehicleRepo,
		CustomerRepo: customerRepo,
	})
	mechanicService := service.NewMechanicService(mechanicRepo)
	inventoryService := service.NewInventoryService(inventoryRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		VehicleRepo:   vehicleRepo,
		MechanicRepo:  mechanicRepo,
		InventoryRepo: inventoryRepo,
		Dispatcher:    dispatcher,
	})

	limiter := ratelimit.NewLimiter(redis.Client, cfg.RateLimit, logger, metrics)
	responseCache := cache.New(redis.Client, cfg.Cache.Enabled, logger, metrics)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Customers:      handlers.NewCustomersHandler(customerService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		Mechanics:      handlers.NewMechanicsHandler(mechanicService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Inventory:      handlers.NewInventoryHandler(inventoryService),
		AuthMiddleware: authMiddleware,
		Limiter:        limiter,
		Cache:          responseCache,
		CacheTTL:       cfg.Cache,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
