package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	appactivity "github.com/tu-usuario/atelier-stock/internal/application/activity"
	"github.com/tu-usuario/atelier-stock/internal/application/analytics"
	"github.com/tu-usuario/atelier-stock/internal/application/costs"
	"github.com/tu-usuario/atelier-stock/internal/application/dto"
	"github.com/tu-usuario/atelier-stock/internal/application/usecase"
	"github.com/tu-usuario/atelier-stock/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Coordinator *appactivity.Coordinator
	AnalyticsUC *analytics.UseCase
	CostsUC     *costs.UseCase
	ProductUC   *usecase.ProductUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Activities (ledger)
	activities := api.Group("/activities")
	activityHandler := NewActivityHandler(deps.Coordinator, deps.AnalyticsUC)
	activities.Post("/", activityHandler.Create)
	activities.Put("/:id", activityHandler.Update)
	activities.Get("/", activityHandler.List)

	// Analytics (lecturas puras sobre el ledger)
	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/stock", analyticsHandler.Stock)
	analyticsGroup.Get("/profit", analyticsHandler.Profit)
	analyticsGroup.Get("/sales", analyticsHandler.TotalSales)
	analyticsGroup.Get("/statistics", analyticsHandler.Statistics)
	analyticsGroup.Get("/margins", analyticsHandler.Margins)
	analyticsGroup.Get("/revenue", analyticsHandler.Revenue)

	// Monthly costs
	costsGroup := api.Group("/costs")
	costHandler := NewCostHandler(deps.CostsUC)
	costsGroup.Get("/:month", costHandler.GetByMonth)
	costsGroup.Put("/:month", costHandler.Upsert)
	costsGroup.Patch("/:month", costHandler.UpdateField)

	// Products (catálogo, solo lectura)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
}

// writeError mapea la taxonomía de errores del dominio a HTTP.
// Los errores de store sin tipo conocido pasan como 500 INTERNAL.
func writeError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: vErr.Code, Message: vErr.Message})
	}
	var nfErr *domain.NotFoundError
	if errors.As(err, &nfErr) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: nfErr.Error()})
	}
	var scErr *domain.StockConsistencyError
	if errors.As(err, &scErr) {
		// Explícito para que el operador distinga riesgo de corrupción del
		// ledger de un simple error de validación.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STOCK_CONSISTENCY", Message: scErr.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
