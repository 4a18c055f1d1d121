package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
)

// CostRepository define el puerto de persistencia para costos mensuales.
// GetMonthlyCost devuelve (nil, nil) si el mes no tiene fila registrada.
type CostRepository interface {
	GetMonthlyCost(ctx context.Context, month string) (*entity.MonthlyCost, error)
	CreateOrUpdateMonthlyCost(ctx context.Context, cost *entity.MonthlyCost) (*entity.MonthlyCost, error)
	UpdateMonthlyCostField(ctx context.Context, month, field string, value decimal.Decimal) (*entity.MonthlyCost, error)
}
