package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
)

var _ repository.CostRepository = (*CostRepo)(nil)

// CostRepo implementación del puerto CostRepository sobre PostgreSQL.
type CostRepo struct {
	q Querier
}

// NewCostRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostRepository(q Querier) *CostRepo {
	return &CostRepo{q: q}
}

const costColumns = "month, shipping_cost, marketing_cost, overhead_cost, updated_at"

// GetMonthlyCost obtiene la fila de un mes; (nil, nil) si no existe.
func (r *CostRepo) GetMonthlyCost(ctx context.Context, month string) (*entity.MonthlyCost, error) {
	query := `SELECT ` + costColumns + ` FROM monthly_costs WHERE month = $1`
	var c entity.MonthlyCost
	err := r.q.QueryRow(ctx, query, month).Scan(
		&c.Month, &c.ShippingCost, &c.MarketingCost, &c.OverheadCost, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get monthly cost: %w", err)
	}
	return &c, nil
}

// CreateOrUpdateMonthlyCost upsert por mes.
func (r *CostRepo) CreateOrUpdateMonthlyCost(ctx context.Context, cost *entity.MonthlyCost) (*entity.MonthlyCost, error) {
	query := `
		INSERT INTO monthly_costs (` + costColumns + `)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (month) DO UPDATE SET
			shipping_cost = EXCLUDED.shipping_cost,
			marketing_cost = EXCLUDED.marketing_cost,
			overhead_cost = EXCLUDED.overhead_cost,
			updated_at = now()
		RETURNING ` + costColumns
	var c entity.MonthlyCost
	err := r.q.QueryRow(ctx, query,
		cost.Month, cost.ShippingCost, cost.MarketingCost, cost.OverheadCost,
	).Scan(&c.Month, &c.ShippingCost, &c.MarketingCost, &c.OverheadCost, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert monthly cost: %w", err)
	}
	return &c, nil
}

// UpdateMonthlyCostField actualiza una sola categoría; crea la fila del mes si
// no existía. field ya viene validado por el caso de uso contra la lista
// cerrada de columnas.
func (r *CostRepo) UpdateMonthlyCostField(ctx context.Context, month, field string, value decimal.Decimal) (*entity.MonthlyCost, error) {
	if !entity.IsValidCostField(field) {
		return nil, fmt.Errorf("campo de costo desconocido: %q", field)
	}
	query := fmt.Sprintf(`
		INSERT INTO monthly_costs (month, %s, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (month) DO UPDATE SET %s = EXCLUDED.%s, updated_at = now()
		RETURNING `+costColumns, field, field, field)
	var c entity.MonthlyCost
	err := r.q.QueryRow(ctx, query, month, value).Scan(
		&c.Month, &c.ShippingCost, &c.MarketingCost, &c.OverheadCost, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update monthly cost field: %w", err)
	}
	return &c, nil
}
