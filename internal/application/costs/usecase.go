// Package costs casos de uso de administración de costos mensuales.
package costs

import (
	"context"
	"time"

	"github.com/tu-usuario/atelier-stock/internal/application/dto"
	"github.com/tu-usuario/atelier-stock/internal/domain"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
)

// UseCase upsert y consulta de costos mensuales (clave YYYY-MM).
type UseCase struct {
	repo repository.CostRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CostRepository) *UseCase {
	return &UseCase{repo: repo}
}

// GetByMonth devuelve los costos del mes; un mes sin fila devuelve ceros.
func (uc *UseCase) GetByMonth(ctx context.Context, month string) (*dto.MonthlyCostResponse, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	cost, err := uc.repo.GetMonthlyCost(ctx, month)
	if err != nil {
		return nil, err
	}
	if cost == nil {
		cost = &entity.MonthlyCost{Month: month}
	}
	return dto.ToMonthlyCostResponse(cost), nil
}

// Upsert crea o reemplaza la fila de costos del mes.
func (uc *UseCase) Upsert(ctx context.Context, month string, in dto.UpsertMonthlyCostRequest) (*dto.MonthlyCostResponse, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if in.ShippingCost.IsNegative() || in.MarketingCost.IsNegative() || in.OverheadCost.IsNegative() {
		return nil, domain.NewValidationError("monthly costs must not be negative")
	}
	cost, err := uc.repo.CreateOrUpdateMonthlyCost(ctx, &entity.MonthlyCost{
		Month:         month,
		ShippingCost:  in.ShippingCost,
		MarketingCost: in.MarketingCost,
		OverheadCost:  in.OverheadCost,
		UpdatedAt:     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return dto.ToMonthlyCostResponse(cost), nil
}

// UpdateField actualiza una sola categoría de costo del mes.
func (uc *UseCase) UpdateField(ctx context.Context, month string, in dto.UpdateCostFieldRequest) (*dto.MonthlyCostResponse, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if !entity.IsValidCostField(in.Field) {
		return nil, domain.NewValidationError("field must be one of shipping_cost, marketing_cost, overhead_cost")
	}
	if in.Value.IsNegative() {
		return nil, domain.NewValidationError("monthly costs must not be negative")
	}
	cost, err := uc.repo.UpdateMonthlyCostField(ctx, month, in.Field, in.Value)
	if err != nil {
		return nil, err
	}
	return dto.ToMonthlyCostResponse(cost), nil
}

func validateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return domain.NewValidationError("month must be a valid YYYY-MM string")
	}
	return nil
}
