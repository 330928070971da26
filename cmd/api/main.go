package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/shop-inventory/internal/application/analytics"
	"github.com/jhoicas/shop-inventory/internal/application/auth"
	"github.com/jhoicas/shop-inventory/internal/application/usecase"
	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/shop-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/shop-inventory/internal/interfaces/http"
	"github.com/jhoicas/shop-inventory/pkg/config"
	"github.com/jhoicas/shop-inventory/pkg/logger"

	_ "github.com/jhoicas/shop-inventory/docs"
)

// @title                       Shop Inventory API
// @version                     1.0
// @description                 Inventario de tienda: autenticación JWT, roles admin/employee y productos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	// Precios como números JSON (no strings).
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	var (
		userRepo    repository.UserRepository
		productRepo repository.ProductRepository
		health      func(ctx context.Context) error
	)
	switch cfg.App.Store {
	case "memory":
		log.Warn().Msg("STORE=memory: los datos se pierden al reiniciar")
		userRepo = memory.NewUserRepository()
		productRepo = memory.NewProductRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		userRepo = postgres.NewUserRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		health = pool.Ping
	}

	var rateStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RateLimit.RedisURL != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		rateStore = ratelimit.NewRedisStore(rdb)
		log.Info().Msg("límite de login compartido en Redis")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	}, cfg.Auth.BcryptCost, log)
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, inventory.NewCodeGenerator())
	dashboardUC := appanalytics.NewDashboardUseCase(productRepo)
	reportUC := appanalytics.NewReportUseCase(productRepo, infrapdf.NewMarotoPDFGenerator(), cfg.App.Name)

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo generado).
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Shop Inventory API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
		RateStore:   rateStore,
		RateLimit:   cfg.RateLimit.Limit,
		RateWindow:  cfg.RateLimit.Window,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		ServiceName: cfg.App.Name,
		Health:      health,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
