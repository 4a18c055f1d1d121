// Package observe implementa los sumideros de observabilidad del coordinador.
package observe

import (
	"context"

	"github.com/shopspring/decimal"
	appactivity "github.com/tu-usuario/atelier-stock/internal/application/activity"
	"github.com/tu-usuario/atelier-stock/pkg/logger"
)

var _ appactivity.ConsistencyMonitor = (*LogMonitor)(nil)

// LogMonitor sumidero de señales de consistencia sobre zerolog. En producción
// estos eventos alimentan el job de reconciliación/monitoreo externo.
type LogMonitor struct {
	log *logger.Logger
}

// NewLogMonitor construye el monitor.
func NewLogMonitor(log *logger.Logger) *LogMonitor {
	return &LogMonitor{log: log}
}

// NegativeStockProjected stock proyectado negativo antes de la suma atómica.
func (m *LogMonitor) NegativeStockProjected(_ context.Context, productID string, projected decimal.Decimal) {
	m.log.Warn().
		Str("product_id", productID).
		Str("projected_stock", projected.String()).
		Msg("stock proyectado negativo; la suma atómica acotará en 0")
}

// OrphanedActivity quedó una actividad en el ledger sin efecto de stock.
func (m *LogMonitor) OrphanedActivity(_ context.Context, activityID string, cause error) {
	m.log.Error().
		Err(cause).
		Str("activity_id", activityID).
		Msg("delete compensatorio falló: actividad huérfana en el ledger")
}

// CompensationFailed el parche compensatorio de una actualización falló.
func (m *LogMonitor) CompensationFailed(_ context.Context, activityID string, cause error) {
	m.log.Error().
		Err(cause).
		Str("activity_id", activityID).
		Msg("parche compensatorio falló: ledger y stock pueden divergir")
}
