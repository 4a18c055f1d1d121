package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// DateRangeRequest rango de fechas inclusivo para las agregaciones.
type DateRangeRequest struct {
	StartDate string `query:"start_date"` // ISO-8601; vacío = sin límite inferior
	EndDate   string `query:"end_date"`   // ISO-8601; vacío = sin límite superior
}

// IsZero indica si no se pidió rango.
func (r DateRangeRequest) IsZero() bool {
	return r.StartDate == "" && r.EndDate == ""
}

// ── Estadísticas por período ──────────────────────────────────────────────────

// PeriodStatsDTO acumulados de un bucket de calendario (clave UTC).
type PeriodStatsDTO struct {
	Period         string          `json:"period"` // YYYY-MM-DD, YYYY-MM o YYYY
	Profit         decimal.Decimal `json:"profit"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalCreations int             `json:"total_creations"`
}

// ── Márgenes por producto ─────────────────────────────────────────────────────

// ProductMarginDTO margen acumulado de un producto sobre sus ventas.
// MarginPercentage = profit / totalRevenue * 100 (0 si no hubo ingresos).
type ProductMarginDTO struct {
	ProductID        string          `json:"product_id"`
	SalesCount       int             `json:"sales_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Profit           decimal.Decimal `json:"profit"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"`
}

// ── Reporte de ingresos ───────────────────────────────────────────────────────

// RevenuePeriodDTO desglose de ingresos por bucket de calendario.
type RevenuePeriodDTO struct {
	Period      string          `json:"period"`
	Revenue     decimal.Decimal `json:"revenue"`
	GrossMargin decimal.Decimal `json:"gross_margin"`
}

// RevenueReportDTO ingresos del período con costos mensuales descontados.
// NetResult = GrossMargin - ShippingCost - (MarketingCost + OverheadCost).
type RevenueReportDTO struct {
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	TotalRevenue    decimal.Decimal    `json:"total_revenue"`
	TotalCost       decimal.Decimal    `json:"total_cost"`
	GrossMargin     decimal.Decimal    `json:"gross_margin"`
	GrossMarginRate decimal.Decimal    `json:"gross_margin_rate"` // % sobre ingresos
	ShippingCost    decimal.Decimal    `json:"shipping_cost"`
	MarketingCost   decimal.Decimal    `json:"marketing_cost"`
	OverheadCost    decimal.Decimal    `json:"overhead_cost"`
	NetResult       decimal.Decimal    `json:"net_result"`
	NetResultRate   decimal.Decimal    `json:"net_result_rate"` // % sobre ingresos
	Periods         []RevenuePeriodDTO `json:"periods"`
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// StockResponse stock derivado del ledger por producto.
type StockResponse struct {
	Stock map[string]decimal.Decimal `json:"stock"`
}
