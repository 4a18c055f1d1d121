package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse producto con los nombres del catálogo resueltos
// (Model -> Coloris) para presentación.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ModelID     *string         `json:"model_id,omitempty"`
	ModelName   string          `json:"model_name,omitempty"`
	ColorisName string          `json:"coloris_name,omitempty"`
	Stock       decimal.Decimal `json:"stock"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
