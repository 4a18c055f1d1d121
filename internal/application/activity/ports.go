package activity

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockCalculator recalcula el stock de un producto sumando el ledger completo.
// Lo implementa el motor de agregación; el coordinador lo usa en el camino de
// actualización porque un ajuste incremental no siempre puede derivarse
// (la actividad pudo cambiar de producto o de tipo).
type StockCalculator interface {
	StockForProduct(ctx context.Context, productID string) (decimal.Decimal, error)
}

// ConsistencyMonitor sumidero de señales de calidad de datos del coordinador.
// Se inyecta en lugar de loggear globalmente para que los tests puedan
// afirmar sobre las señales emitidas. Las implementaciones no deben fallar.
type ConsistencyMonitor interface {
	// NegativeStockProjected stock proyectado negativo antes de la suma atómica
	// (no fatal: la suma acota en 0, pero el ledger quedó incoherente).
	NegativeStockProjected(ctx context.Context, productID string, projected decimal.Decimal)
	// OrphanedActivity el delete compensatorio falló: quedó una actividad en el
	// ledger sin efecto de stock correspondiente.
	OrphanedActivity(ctx context.Context, activityID string, cause error)
	// CompensationFailed el parche compensatorio de una actualización falló.
	CompensationFailed(ctx context.Context, activityID string, cause error)
}
