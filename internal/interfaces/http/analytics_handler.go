package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/atelier-stock/internal/application/analytics"
	"github.com/tu-usuario/atelier-stock/internal/application/dto"
)

// AnalyticsHandler maneja las consultas de agregación sobre el ledger.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Stock godoc
// @Summary      Stock derivado del ledger por producto
// @Tags         analytics
// @Produce      json
// @Param        product_id  query  string  false  "acotar a un producto"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/analytics/stock [get]
func (h *AnalyticsHandler) Stock(c *fiber.Ctx) error {
	var productID *string
	if v := c.Query("product_id"); v != "" {
		productID = &v
	}
	stock, err := h.uc.StockByProduct(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{Stock: stock})
}

// Profit godoc
// @Summary      Utilidad total de las ventas del rango
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601"
// @Success      200  {object}  map[string]any
// @Router       /api/analytics/profit [get]
func (h *AnalyticsHandler) Profit(c *fiber.Ctx) error {
	profit, err := h.uc.Profit(c.Context(), rangeFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"profit": profit})
}

// TotalSales godoc
// @Summary      Suma de amount de las ventas del rango
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601"
// @Success      200  {object}  map[string]any
// @Router       /api/analytics/sales [get]
func (h *AnalyticsHandler) TotalSales(c *fiber.Ctx) error {
	total, err := h.uc.TotalSales(c.Context(), rangeFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total_sales": total})
}

// Statistics godoc
// @Summary      Estadísticas por período (DAILY, MONTHLY o YEARLY)
// @Tags         analytics
// @Produce      json
// @Param        period      query  string  true   "DAILY|MONTHLY|YEARLY"
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601"
// @Success      200  {array}   dto.PeriodStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/statistics [get]
func (h *AnalyticsHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.ProfitsByPeriod(c.Context(), analytics.Period(c.Query("period")), rangeFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// Margins godoc
// @Summary      Márgenes por producto, orden por utilidad descendente
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601"
// @Success      200  {array}  dto.ProductMarginDTO
// @Router       /api/analytics/margins [get]
func (h *AnalyticsHandler) Margins(c *fiber.Ctx) error {
	margins, err := h.uc.ProductMargins(c.Context(), rangeFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(margins)
}

// Revenue godoc
// @Summary      Ingresos del rango con costos mensuales descontados
// @Tags         analytics
// @Produce      json
// @Param        period      query  string  true  "DAILY|MONTHLY|YEARLY"
// @Param        start_date  query  string  true  "ISO-8601"
// @Param        end_date    query  string  true  "ISO-8601"
// @Success      200  {object}  dto.RevenueReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/revenue [get]
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	report, err := h.uc.Revenue(
		c.Context(),
		analytics.Period(c.Query("period")),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

func rangeFromQuery(c *fiber.Ctx) dto.DateRangeRequest {
	return dto.DateRangeRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}
