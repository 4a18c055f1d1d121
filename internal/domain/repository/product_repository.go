package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos y catálogo.
// GetByID/GetModelByID/GetColorisByID devuelven (nil, nil) si no existe.
//
// UpdateStockAtomically suma delta al stock materializado en una sola
// sentencia, acotando el resultado en 0 (linealizable por producto). Es la
// única garantía real de concurrencia del motor: no existe set absoluto, por
// eso el coordinador calcula deltas contra el stock derivado del ledger.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	UpdateStockAtomically(ctx context.Context, id string, delta decimal.Decimal) error
	GetModelByID(ctx context.Context, id string) (*entity.Model, error)
	GetColorisByID(ctx context.Context, id string) (*entity.Coloris, error)
}
