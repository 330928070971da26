package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/shop-inventory/internal/application/analytics"
	"github.com/jhoicas/shop-inventory/internal/application/auth"
	"github.com/jhoicas/shop-inventory/internal/application/usecase"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	JWTSecret   string

	// Limitador de /api/auth/*; Limit <= 0 lo desactiva.
	RateStore  hitCounter
	RateLimit  int
	RateWindow time.Duration

	CORSOrigins string
	ServiceName string
	// Health verifica las dependencias (ping a la DB); nil si no hay nada que verificar.
	Health func(ctx context.Context) error
	Log    *logger.Logger
}

// Router registra middlewares globales y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	if origins := strings.TrimSpace(deps.CORSOrigins); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PUT,PATCH,OPTIONS",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": deps.ServiceName, "error": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api")

	// Auth (público, con límite de intentos por IP)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	limited := func(c *fiber.Ctx) error { return c.Next() }
	if deps.RateStore != nil && deps.RateLimit > 0 {
		limited = RateLimit(deps.RateStore, "auth", deps.RateLimit, deps.RateWindow, log)
	}
	authGroup.Post("/register", limited, authHandler.Register)
	authGroup.Post("/login", limited, authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.UserUC)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	staff := RequireRole(entity.RoleEmployee, entity.RoleAdmin)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", requireAuth)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", staff, productHandler.Update)
	products.Patch("/:id/stock", staff, productHandler.UpdateStock)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	api.Get("/dashboard/summary", requireAuth, dashboardHandler.GetSummary)
	api.Get("/reports/inventory.pdf", requireAuth, staff, dashboardHandler.InventoryReport)
}
