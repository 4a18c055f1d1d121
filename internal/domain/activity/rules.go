// Package activity contiene las reglas de validación del ledger de
// actividades (servicio de dominio, sin I/O). Las reglas corren en orden
// fijo y gana la primera falla.
package activity

import (
	"fmt"
	"math"
	"time"

	"github.com/tu-usuario/atelier-stock/internal/domain"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
)

// Layouts ISO-8601 aceptados para el campo date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate interpreta un timestamp ISO-8601 extendido.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
}

// Draft candidato a crear: el payload crudo, antes de convertir a entidad.
// Quantity y Amount llegan como float64 del wire; se validan aquí (NaN/Inf)
// antes de pasar a decimal.
type Draft struct {
	Date      string
	Type      entity.ActivityType
	ProductID *string
	Quantity  *float64
	Amount    *float64
	Note      *string
}

// Patch payload crudo de actualización parcial, con bit de presencia por campo.
// Set=true y Value=nil significa "borrar el campo" (solo válido para
// productId y note).
type Patch struct {
	Date      entity.Field[*string]
	Type      entity.Field[*string]
	ProductID entity.Field[*string]
	Quantity  entity.Field[*float64]
	Amount    entity.Field[*float64]
	Note      entity.Field[*string]
}

// ValidateDraft valida un candidato a crear. Sin efectos secundarios.
func ValidateDraft(d Draft) error {
	if d.Type.RequiresProduct() && !present(d.ProductID) {
		return domain.NewValidationError(fmt.Sprintf("productId is required for %s activity type", d.Type))
	}
	if _, err := ParseDate(d.Date); err != nil {
		return domain.NewValidationError("date must be a valid ISO 8601 string")
	}
	if err := checkNumber("quantity", d.Quantity); err != nil {
		return err
	}
	if err := checkNumber("amount", d.Amount); err != nil {
		return err
	}
	if !d.Type.IsValid() {
		return domain.NewValidationError("type must be a valid activity type")
	}
	return nil
}

// ValidatePatch valida el estado resultante de aplicar p sobre existing.
// Las reglas corren sobre el estado mergeado; además prohíbe borrar productId
// de una venta o corrección ya registrada.
func ValidatePatch(existing *entity.Activity, p Patch) error {
	effType := existing.Type
	if p.Type.Set && p.Type.Value != nil {
		effType = entity.ActivityType(*p.Type.Value)
	}

	effProductID := existing.ProductID
	if p.ProductID.Set {
		effProductID = p.ProductID.Value
	}

	if effType.RequiresProduct() && !present(effProductID) {
		return domain.NewValidationError(fmt.Sprintf("productId is required for %s activity type", effType))
	}
	if p.ProductID.Set && !present(p.ProductID.Value) && existing.Type.RequiresProduct() {
		return domain.NewValidationError(fmt.Sprintf("Cannot remove productId from %s activity type", existing.Type))
	}
	if p.Date.Set {
		if p.Date.Value == nil {
			return domain.NewValidationError("date must be a valid ISO 8601 string")
		}
		if _, err := ParseDate(*p.Date.Value); err != nil {
			return domain.NewValidationError("date must be a valid ISO 8601 string")
		}
	}
	if p.Quantity.Set {
		if p.Quantity.Value == nil {
			return domain.NewValidationError("quantity must be a valid number")
		}
		if err := checkNumber("quantity", p.Quantity.Value); err != nil {
			return err
		}
	}
	if p.Amount.Set {
		if p.Amount.Value == nil {
			return domain.NewValidationError("amount must be a valid number")
		}
		if err := checkNumber("amount", p.Amount.Value); err != nil {
			return err
		}
	}
	if p.Type.Set && (p.Type.Value == nil || !entity.ActivityType(*p.Type.Value).IsValid()) {
		return domain.NewValidationError("type must be a valid activity type")
	}
	return nil
}

// checkNumber rechaza NaN e infinitos con mensajes distintos.
func checkNumber(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) {
		return domain.NewValidationError(fmt.Sprintf("%s must be a valid number", field))
	}
	if math.IsInf(*v, 0) {
		return domain.NewValidationError(fmt.Sprintf("%s must be a finite number", field))
	}
	return nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}
