package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyCost costos fijos del mes (clave YYYY-MM). Solo lo consume la
// agregación de ingresos; el coordinador de stock no lo toca.
type MonthlyCost struct {
	Month         string // YYYY-MM
	ShippingCost  decimal.Decimal
	MarketingCost decimal.Decimal
	OverheadCost  decimal.Decimal
	UpdatedAt     time.Time
}

// Campos actualizables individualmente de MonthlyCost.
const (
	CostFieldShipping  = "shipping_cost"
	CostFieldMarketing = "marketing_cost"
	CostFieldOverhead  = "overhead_cost"
)

// IsValidCostField valida el nombre de campo para UpdateMonthlyCostField.
func IsValidCostField(field string) bool {
	switch field {
	case CostFieldShipping, CostFieldMarketing, CostFieldOverhead:
		return true
	}
	return false
}
