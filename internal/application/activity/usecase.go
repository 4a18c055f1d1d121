// Package activity implementa el coordinador de consistencia actividad-stock:
// la saga de crear/actualizar que mantiene el stock materializado del producto
// coherente con el ledger, con rollback compensatorio ante fallas parciales.
// Las dos escrituras (ledger y stock) van a recursos independientes sin
// transacción compartida; la ventana residual de inconsistencia se asume y se
// vigila con un job de reconciliación externo.
package activity

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/application/dto"
	"github.com/tu-usuario/atelier-stock/internal/domain"
	domactivity "github.com/tu-usuario/atelier-stock/internal/domain/activity"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
)

// Coordinator ejecuta las sagas de creación y actualización de actividades.
type Coordinator struct {
	activities repository.ActivityRepository
	products   repository.ProductRepository
	stocks     StockCalculator
	monitor    ConsistencyMonitor
}

// NewCoordinator construye el coordinador.
func NewCoordinator(
	activities repository.ActivityRepository,
	products repository.ProductRepository,
	stocks StockCalculator,
	monitor ConsistencyMonitor,
) *Coordinator {
	return &Coordinator{
		activities: activities,
		products:   products,
		stocks:     stocks,
		monitor:    monitor,
	}
}

// Create valida, escribe la actividad en el ledger y aplica la cantidad al
// stock materializado del producto (suma atómica acotada en 0). Si el paso de
// stock falla, borra la actividad recién creada y devuelve la causa original
// envuelta en StockConsistencyError; si el borrado compensatorio también
// falla, la actividad queda huérfana y se señala al monitor.
func (c *Coordinator) Create(ctx context.Context, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	draft := domactivity.Draft{
		Date:      in.Date,
		Type:      entity.ActivityType(in.Type),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Amount:    in.Amount,
		Note:      in.Note,
	}
	if err := domactivity.ValidateDraft(draft); err != nil {
		return nil, err
	}

	date, err := domactivity.ParseDate(in.Date)
	if err != nil {
		return nil, domain.NewValidationError("date must be a valid ISO 8601 string")
	}

	now := time.Now()
	a := &entity.Activity{
		ID:        uuid.New().String(),
		Date:      date,
		Type:      entity.ActivityType(in.Type),
		ProductID: normalizeID(in.ProductID),
		Quantity:  fromFloat(in.Quantity),
		Amount:    fromFloat(in.Amount),
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.activities.Create(ctx, a); err != nil {
		return nil, err
	}

	if a.AffectsStock() {
		if err := c.applyStockDelta(ctx, *a.ProductID, a.Quantity); err != nil {
			// Compensación: deshacer la escritura del ledger. Si también falla,
			// no enmascarar la causa original; solo señalar la huérfana.
			if delErr := c.activities.Delete(ctx, a.ID); delErr != nil {
				c.monitor.OrphanedActivity(ctx, a.ID, delErr)
			}
			return nil, domain.NewStockConsistencyError(err)
		}
	}

	return dto.ToActivityResponse(a), nil
}

// Update valida el estado mergeado, escribe el parche y reconcilia el stock de
// cada producto afectado resumando el ledger completo (no un delta incremental:
// la actividad pudo cambiar de producto o de tipo). Ante una falla del paso de
// stock revierte solo los campos presentes en el parche original y devuelve la
// causa envuelta en StockConsistencyError.
func (c *Coordinator) Update(ctx context.Context, id string, in dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	existing, err := c.activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("activity", id)
	}

	rulePatch := toRulePatch(in)
	if err := domactivity.ValidatePatch(existing, rulePatch); err != nil {
		return nil, err
	}

	patch, err := toEntityPatch(in)
	if err != nil {
		return nil, err
	}

	stockAffecting := patch.IsStockAffecting(existing)
	merged := patch.Apply(existing)
	affected := affectedProducts(existing, merged)

	updated, err := c.activities.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Borrada entre el GetByID y el Update.
		return nil, domain.NewNotFoundError("activity", id)
	}

	if stockAffecting {
		if err := c.reconcileProducts(ctx, affected); err != nil {
			revert := patch.Revert(existing)
			if _, revErr := c.activities.Update(ctx, id, revert); revErr != nil {
				c.monitor.CompensationFailed(ctx, id, revErr)
			}
			return nil, domain.NewStockConsistencyError(err)
		}
	}

	return dto.ToActivityResponse(updated), nil
}

// applyStockDelta lee el producto, avisa si el stock proyectado queda negativo
// y aplica la cantidad vía suma atómica acotada.
func (c *Coordinator) applyStockDelta(ctx context.Context, productID string, qty decimal.Decimal) error {
	product, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFoundError("product", productID)
	}
	expected := product.Stock.Add(qty)
	if expected.IsNegative() {
		c.monitor.NegativeStockProjected(ctx, productID, expected)
	}
	return c.products.UpdateStockAtomically(ctx, productID, qty)
}

// reconcileProducts lleva el stock materializado de cada producto al valor
// derivado del ledger. La primitiva solo suma (no hay set absoluto), así que
// se aplica la diferencia contra el stock cacheado. Entre la lectura del
// ledger y la suma hay una ventana de carrera conocida con escritores
// concurrentes del mismo producto.
func (c *Coordinator) reconcileProducts(ctx context.Context, productIDs []string) error {
	for _, pid := range productIDs {
		recomputed, err := c.stocks.StockForProduct(ctx, pid)
		if err != nil {
			return err
		}
		product, err := c.products.GetByID(ctx, pid)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError("product", pid)
		}
		delta := recomputed.Sub(product.Stock)
		if delta.IsZero() {
			continue
		}
		if err := c.products.UpdateStockAtomically(ctx, pid, delta); err != nil {
			return err
		}
	}
	return nil
}

// affectedProducts une los productos de la actividad antes y después del parche.
func affectedProducts(before, after *entity.Activity) []string {
	set := make(map[string]struct{}, 2)
	if before.ProductID != nil {
		set[*before.ProductID] = struct{}{}
	}
	if after.ProductID != nil {
		set[*after.ProductID] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// toRulePatch traduce el request con Optional a la entrada de las reglas de dominio.
func toRulePatch(in dto.UpdateActivityRequest) domactivity.Patch {
	return domactivity.Patch{
		Date:      entity.Field[*string]{Set: in.Date.Set, Value: in.Date.Value},
		Type:      entity.Field[*string]{Set: in.Type.Set, Value: in.Type.Value},
		ProductID: entity.Field[*string]{Set: in.ProductID.Set, Value: in.ProductID.Value},
		Quantity:  entity.Field[*float64]{Set: in.Quantity.Set, Value: in.Quantity.Value},
		Amount:    entity.Field[*float64]{Set: in.Amount.Set, Value: in.Amount.Value},
		Note:      entity.Field[*string]{Set: in.Note.Set, Value: in.Note.Value},
	}
}

// toEntityPatch convierte el request ya validado en un parche de entidad
// (fechas parseadas, números en decimal).
func toEntityPatch(in dto.UpdateActivityRequest) (entity.ActivityPatch, error) {
	var patch entity.ActivityPatch
	if in.Date.Set && in.Date.Value != nil {
		d, err := domactivity.ParseDate(*in.Date.Value)
		if err != nil {
			return patch, domain.NewValidationError("date must be a valid ISO 8601 string")
		}
		patch.Date = &d
	}
	if in.Type.Set && in.Type.Value != nil {
		t := entity.ActivityType(*in.Type.Value)
		patch.Type = &t
	}
	if in.ProductID.Set {
		patch.ProductID = entity.NewField(normalizeID(in.ProductID.Value))
	}
	if in.Quantity.Set && in.Quantity.Value != nil {
		q := decimal.NewFromFloat(*in.Quantity.Value)
		patch.Quantity = &q
	}
	if in.Amount.Set && in.Amount.Value != nil {
		a := decimal.NewFromFloat(*in.Amount.Value)
		patch.Amount = &a
	}
	if in.Note.Set {
		patch.Note = entity.NewField(in.Note.Value)
	}
	return patch, nil
}

func fromFloat(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func normalizeID(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
