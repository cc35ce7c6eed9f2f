// Package server contains the HTTP handlers and route setup for the
// application's API endpoints.
package server

import (
	"context"
	"sync"
	"time"

	"foodbridge/internal/cache"
	"foodbridge/internal/config"
	"foodbridge/internal/middleware"
	"foodbridge/internal/repository"
	"foodbridge/internal/service"
	"foodbridge/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config    *config.Config
	db        *gorm.DB
	redis     *redis.Client
	sessions  *session.Store
	prom      *fiberprometheus.FiberPrometheus
	donorRepo repository.DonorRepository
	storeRepo repository.StoreRepository
	foodRepo  repository.FoodItemRepository
	lifecycle *service.ClaimLifecycle
}

// fiberprometheus registers its collectors in the default registry, so
// the instance is shared across Server values (tests build several).
var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

func newPrometheus() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New("foodbridge-api")
	})
	return promInstance
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Use this in tests or when a bootstrap layer establishes
// DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	donorRepo := repository.NewDonorRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	foodRepo := repository.NewFoodItemRepository(db)

	return &Server{
		config:    cfg,
		db:        db,
		redis:     redisClient,
		sessions:  session.NewStore(),
		prom:      newPrometheus(),
		donorRepo: donorRepo,
		storeRepo: storeRepo,
		foodRepo:  foodRepo,
		lifecycle: service.NewClaimLifecycle(foodRepo, storeRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// OpenTelemetry request spans
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.prom != nil {
		app.Use(s.prom.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
	}

	// Donor routes
	donor := api.Group("/donor")
	donor.Post("/register", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.RegisterDonor)
	donor.Post("/login", middleware.RateLimit(s.redis, 10, time.Minute, "login"), s.Login)

	authed := donor.Group("", middleware.AuthRequired(s.sessions))
	authed.Post("/store", s.RegisterStore)
	authed.Get("/store", s.GetStore)
	authed.Post("/food", s.CreateFoodItem)
	authed.Post("/food/:id/pickup", s.MarkPickedUp)

	// Recipient routes
	recipient := api.Group("/recipient")
	recipient.Get("/available-food", s.AvailableFood)
	recipient.Post("/claim/:id", middleware.RateLimit(s.redis, 20, time.Minute, "claim"), s.ClaimFood)
}

// HealthCheck reports service liveness and database reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
			status = "degraded"
		}
	}
	return c.JSON(fiber.Map{
		"status": status,
		"time":   time.Now().UTC(),
	})
}

// Shutdown releases server resources: the database pool, the Redis
// client, and with them every in-memory session.
func (s *Server) Shutdown(_ context.Context) error {
	cache.Close()

	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
