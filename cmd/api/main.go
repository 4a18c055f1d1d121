package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appactivity "github.com/tu-usuario/atelier-stock/internal/application/activity"
	"github.com/tu-usuario/atelier-stock/internal/application/analytics"
	"github.com/tu-usuario/atelier-stock/internal/application/costs"
	"github.com/tu-usuario/atelier-stock/internal/application/usecase"
	"github.com/tu-usuario/atelier-stock/internal/infrastructure/observe"
	"github.com/tu-usuario/atelier-stock/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/atelier-stock/internal/interfaces/http"
	"github.com/tu-usuario/atelier-stock/pkg/config"
	"github.com/tu-usuario/atelier-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	activityRepo := postgres.NewActivityRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	costRepo := postgres.NewCostRepository(pool)

	costAggregator := analytics.NewCostAggregator(costRepo)
	analyticsUC := analytics.NewUseCase(activityRepo, productRepo, costAggregator, log)
	monitor := observe.NewLogMonitor(log)
	coordinator := appactivity.NewCoordinator(activityRepo, productRepo, analyticsUC, monitor)
	costsUC := costs.NewUseCase(costRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Atelier Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Coordinator: coordinator,
		AnalyticsUC: analyticsUC,
		CostsUC:     costsUC,
		ProductUC:   productUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
