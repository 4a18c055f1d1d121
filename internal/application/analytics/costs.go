package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
)

// CostAggregator suma los costos mensuales de los meses cubiertos por un
// rango. Solo alimenta el reporte de ingresos; no tiene camino de escritura.
type CostAggregator struct {
	costs repository.CostRepository
}

// NewCostAggregator construye el agregador.
func NewCostAggregator(costs repository.CostRepository) *CostAggregator {
	return &CostAggregator{costs: costs}
}

// CostTotals acumulados independientes de las tres categorías.
type CostTotals struct {
	Shipping  decimal.Decimal
	Marketing decimal.Decimal
	Overhead  decimal.Decimal
}

// Aggregate enumera los meses calendario cubiertos por [from, to], busca la
// fila de cada uno y suma las categorías. Un mes sin fila aporta cero.
func (ca *CostAggregator) Aggregate(ctx context.Context, from, to time.Time) (CostTotals, error) {
	var totals CostTotals
	for _, month := range monthsBetween(from, to) {
		cost, err := ca.costs.GetMonthlyCost(ctx, month)
		if err != nil {
			return CostTotals{}, err
		}
		if cost == nil {
			continue
		}
		totals.Shipping = totals.Shipping.Add(cost.ShippingCost)
		totals.Marketing = totals.Marketing.Add(cost.MarketingCost)
		totals.Overhead = totals.Overhead.Add(cost.OverheadCost)
	}
	return totals, nil
}

// monthsBetween claves YYYY-MM de los meses calendario que toca el rango.
func monthsBetween(from, to time.Time) []string {
	from = from.UTC()
	to = to.UTC()
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []string
	for !cur.After(last) {
		months = append(months, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}
