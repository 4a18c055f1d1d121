package repository

import (
	"context"

	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
)

// ActivityRepository define el puerto de persistencia del ledger de actividades.
// GetByID devuelve (nil, nil) si no existe. Update aplica solo los campos
// presentes en el parche (semántica de presencia explícita, ver entity.Field).
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	Update(ctx context.Context, id string, patch entity.ActivityPatch) (*entity.Activity, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Activity, error)
}
