package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product pieza del catálogo del atelier.
// Stock es un valor derivado: la fuente de verdad es la suma de Quantity de
// las actividades que referencian el producto, pero se materializa aquí para
// lecturas rápidas. Se actualiza solo vía suma atómica acotada en cero
// (UpdateStockAtomically del puerto de persistencia).
type Product struct {
	ID        string
	Name      string
	ModelID   *string
	Stock     decimal.Decimal
	UnitCost  decimal.Decimal // costo unitario de producción
	SalePrice decimal.Decimal // precio de venta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Model modelo del catálogo (jerarquía Product -> Model -> Coloris).
type Model struct {
	ID        string
	Name      string
	ColorisID *string
}

// Coloris acabado/color de un modelo.
type Coloris struct {
	ID   string
	Name string
}
