package server

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/handlers"
	"marketplace/internal/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

const serviceName = "marketplace"

// Server bundles the HTTP app with the services it was built from.
type Server struct {
	App  *fiber.App
	Auth *services.AuthService
}

// New wires repositories, services and handlers into a Fiber app. publisher
// may be nil to disable order events.
func New(cfg *config.Config, db *gorm.DB, publisher services.EventPublisher) (*Server, error) {
	policy, err := services.TransitionPolicyByName(cfg.Orders.TransitionPolicy)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	repos := repositories.NewGORMRepositories(db)
	tx := repositories.NewGORMTransactor(db)

	// --- Services ---
	tokenService := services.NewTokenService(cfg.JWT.Secret)
	authService := services.NewAuthService(repos.Users, tokenService)
	storeService := services.NewStoreService(repos.Stores, repos.Products, repos.Reviews)
	productService := services.NewProductService(repos.Stores, repos.Products)
	orderService := services.NewOrderService(tx, repos.Orders, repos.Stores, publisher, policy)
	reviewService := services.NewReviewService(tx, repos.Reviews, repos.Stores)

	app := fiber.New(fiber.Config{
		AppName:      serviceName,
		ErrorHandler: errorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api")
	api.Get("/health", healthHandler(db))

	guard := middleware.NewGuard(authService)
	handlers.NewAuthHandler(authService).RegisterRoutes(api, guard)
	handlers.NewStoreHandler(storeService, productService).RegisterRoutes(api, guard)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(api, guard)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, guard)

	return &Server{App: app, Auth: authService}, nil
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status, dbStatus, code := "healthy", "connected", fiber.StatusOK
		if err := database.Ping(ctx, db); err != nil {
			status, dbStatus, code = "unhealthy", err.Error(), fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"service":  serviceName,
			"status":   status,
			"database": dbStatus,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}

// errorHandler renders errors that escape handlers, such as unknown routes,
// in the same {"message": ...} shape handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
