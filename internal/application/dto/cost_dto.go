package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
)

// UpsertMonthlyCostRequest payload para PUT /api/costs/:month.
type UpsertMonthlyCostRequest struct {
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	MarketingCost decimal.Decimal `json:"marketing_cost"`
	OverheadCost  decimal.Decimal `json:"overhead_cost"`
}

// UpdateCostFieldRequest payload para PATCH /api/costs/:month.
type UpdateCostFieldRequest struct {
	Field string          `json:"field"` // shipping_cost | marketing_cost | overhead_cost
	Value decimal.Decimal `json:"value"`
}

// MonthlyCostResponse fila de costos de un mes.
type MonthlyCostResponse struct {
	Month         string          `json:"month"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	MarketingCost decimal.Decimal `json:"marketing_cost"`
	OverheadCost  decimal.Decimal `json:"overhead_cost"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToMonthlyCostResponse convierte la entidad en DTO.
func ToMonthlyCostResponse(c *entity.MonthlyCost) *MonthlyCostResponse {
	if c == nil {
		return nil
	}
	return &MonthlyCostResponse{
		Month:         c.Month,
		ShippingCost:  c.ShippingCost,
		MarketingCost: c.MarketingCost,
		OverheadCost:  c.OverheadCost,
		UpdatedAt:     c.UpdatedAt,
	}
}
