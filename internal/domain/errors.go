package domain

import (
	"errors"
	"fmt"
)

// Errores centinela de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// ValidationError entrada rechazada antes de cualquier escritura.
// El caller puede corregir el payload y reintentar; nunca dispara compensación.
type ValidationError struct {
	Code    string
	Message string
}

// NewValidationError construye un ValidationError con el código estándar.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Code: "VALIDATION_ERROR", Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError recurso inexistente, con el id faltante.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Resource, e.ID)
}

// StockConsistencyError falla del paso de stock posterior a la escritura en el ledger.
// Siempre sigue a un intento de compensación; el caller ve la causa original,
// nunca el error de la compensación (ese solo se registra en el monitor).
type StockConsistencyError struct {
	Cause error
}

func NewStockConsistencyError(cause error) *StockConsistencyError {
	return &StockConsistencyError{Cause: cause}
}

func (e *StockConsistencyError) Error() string {
	return fmt.Sprintf("Failed to update product stock for activity: %v", e.Cause)
}

func (e *StockConsistencyError) Unwrap() error {
	return e.Cause
}
