package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/domain"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = "id, name, model_id, stock, unit_cost, sale_price, created_at, updated_at"

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.ModelID, &p.Stock, &p.UnitCost, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List devuelve el catálogo completo.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.ModelID, &p.Stock, &p.UnitCost, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpdateStockAtomically suma delta al stock en una sola sentencia, acotando
// el resultado en 0. GREATEST corre dentro del UPDATE con lock de fila, así
// que la operación es linealizable por producto.
func (r *ProductRepo) UpdateStockAtomically(ctx context.Context, id string, delta decimal.Decimal) error {
	query := `
		UPDATE products
		SET stock = GREATEST(stock + $2, 0), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("product", id)
	}
	return nil
}

// GetModelByID obtiene un modelo del catálogo; (nil, nil) si no existe.
func (r *ProductRepo) GetModelByID(ctx context.Context, id string) (*entity.Model, error) {
	query := `SELECT id, name, coloris_id FROM product_models WHERE id = $1`
	var m entity.Model
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.ColorisID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return &m, nil
}

// GetColorisByID obtiene un coloris del catálogo; (nil, nil) si no existe.
func (r *ProductRepo) GetColorisByID(ctx context.Context, id string) (*entity.Coloris, error) {
	query := `SELECT id, name FROM product_coloris WHERE id = $1`
	var c entity.Coloris
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coloris: %w", err)
	}
	return &c, nil
}
