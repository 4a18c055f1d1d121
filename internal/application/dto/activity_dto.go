package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
)

// CreateActivityRequest payload para POST /api/activities.
// Quantity y Amount se reciben como float64 y se validan (NaN/Inf) antes de
// convertirse a decimal.
type CreateActivityRequest struct {
	Date      string   `json:"date"`
	Type      string   `json:"type"`
	ProductID *string  `json:"product_id"`
	Quantity  *float64 `json:"quantity"`
	Amount    *float64 `json:"amount"`
	Note      *string  `json:"note"`
}

// UpdateActivityRequest payload para PUT /api/activities/:id.
// Cada campo distingue "omitido" de "enviado en null": borrar productId de
// una venta es un error de validación, omitirlo no.
type UpdateActivityRequest struct {
	Date      Optional[string]  `json:"date"`
	Type      Optional[string]  `json:"type"`
	ProductID Optional[string]  `json:"product_id"`
	Quantity  Optional[float64] `json:"quantity"`
	Amount    Optional[float64] `json:"amount"`
	Note      Optional[string]  `json:"note"`
}

// ActivityResponse representación de una actividad del ledger.
type ActivityResponse struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Type      string          `json:"type"`
	ProductID *string         `json:"product_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToActivityResponse convierte la entidad en DTO.
func ToActivityResponse(a *entity.Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	return &ActivityResponse{
		ID:        a.ID,
		Date:      a.Date,
		Type:      string(a.Type),
		ProductID: a.ProductID,
		Quantity:  a.Quantity,
		Amount:    a.Amount,
		Note:      a.Note,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ActivityFilter filtros AND-combinados para el listado paginado del ledger.
type ActivityFilter struct {
	StartDate string  `query:"start_date"` // ISO-8601; vacío = sin límite inferior
	EndDate   string  `query:"end_date"`   // ISO-8601; fecha sola se extiende a fin de día
	Type      string  `query:"type"`       // CREATION|SALE|STOCK_CORRECTION|OTHER; vacío = todos
	ProductID *string `query:"product_id"`
	PageRequest
}

// ActivityListResponse página del ledger ordenada por fecha descendente.
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	PageResponse
}
