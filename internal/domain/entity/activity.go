package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType tipo de actividad del ledger.
type ActivityType string

// Tipos de actividad.
const (
	ActivityTypeCreation        ActivityType = "CREATION"         // alta de producción
	ActivityTypeSale            ActivityType = "SALE"             // venta
	ActivityTypeStockCorrection ActivityType = "STOCK_CORRECTION" // corrección de inventario
	ActivityTypeOther           ActivityType = "OTHER"            // gasto u operación sin producto
)

// IsValid indica si el tipo es uno de los cuatro conocidos.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCreation, ActivityTypeSale, ActivityTypeStockCorrection, ActivityTypeOther:
		return true
	}
	return false
}

// RequiresProduct indica si el tipo exige ProductID (ventas y correcciones).
func (t ActivityType) RequiresProduct() bool {
	return t == ActivityTypeSale || t == ActivityTypeStockCorrection
}

// Activity hecho inmutable del ledger: creación, venta, corrección de stock u otro.
// Quantity con signo: positivo entra stock, negativo sale. Amount es el valor
// monetario de la transacción (0 para tipos sin precio).
type Activity struct {
	ID        string
	Date      time.Time
	Type      ActivityType
	ProductID *string
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AffectsStock indica si la actividad participa del stock materializado del
// producto: tiene producto, no es OTHER y mueve cantidad. Nota: la consulta de
// stock derivado desde el ledger sí incluye OTHER con producto; esa divergencia
// se conserva tal como se observa en producción.
func (a *Activity) AffectsStock() bool {
	return a.ProductID != nil && a.Type != ActivityTypeOther && !a.Quantity.IsZero()
}

// ActivityPatch actualización parcial de una actividad.
// Los campos puntero nil significan "sin cambio". ProductID y Note usan Field
// porque admiten borrado explícito (Set=true, Value=nil).
type ActivityPatch struct {
	Date      *time.Time
	Type      *ActivityType
	ProductID Field[*string]
	Quantity  *decimal.Decimal
	Amount    *decimal.Decimal
	Note      Field[*string]
}

// IsStockAffecting indica si aplicar el parche sobre existing cambia cantidad,
// producto o tipo (los tres disparadores de reconciliación de stock).
func (p ActivityPatch) IsStockAffecting(existing *Activity) bool {
	if p.Quantity != nil && !p.Quantity.Equal(existing.Quantity) {
		return true
	}
	if p.ProductID.Set && !equalStringPtr(p.ProductID.Value, existing.ProductID) {
		return true
	}
	if p.Type != nil && *p.Type != existing.Type {
		return true
	}
	return false
}

// Apply devuelve una copia de existing con el parche aplicado.
func (p ActivityPatch) Apply(existing *Activity) *Activity {
	merged := *existing
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if p.ProductID.Set {
		merged.ProductID = p.ProductID.Value
	}
	if p.Quantity != nil {
		merged.Quantity = *p.Quantity
	}
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Note.Set {
		merged.Note = p.Note.Value
	}
	return &merged
}

// Revert construye el parche inverso: para cada campo presente en p, el valor
// que tenía original. Se usa como compensación cuando el paso de stock falla
// después de escribir la actualización.
func (p ActivityPatch) Revert(original *Activity) ActivityPatch {
	var rev ActivityPatch
	if p.Date != nil {
		d := original.Date
		rev.Date = &d
	}
	if p.Type != nil {
		t := original.Type
		rev.Type = &t
	}
	if p.ProductID.Set {
		rev.ProductID = NewField(original.ProductID)
	}
	if p.Quantity != nil {
		q := original.Quantity
		rev.Quantity = &q
	}
	if p.Amount != nil {
		a := original.Amount
		rev.Amount = &a
	}
	if p.Note.Set {
		rev.Note = NewField(original.Note)
	}
	return rev
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
