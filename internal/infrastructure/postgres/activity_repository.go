package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/atelier-stock/internal/domain"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del puerto ActivityRepository sobre PostgreSQL.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = "id, date, type, product_id, quantity, amount, note, created_at, updated_at"

// Create persiste una actividad del ledger.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Date, a.Type, a.ProductID, a.Quantity, a.Amount, a.Note, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert activity %s: %w", a.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// GetByID obtiene una actividad por ID; (nil, nil) si no existe.
func (r *ActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	a, err := scanActivity(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

// Update aplica solo los campos presentes en el parche y devuelve la fila
// resultante. Los Field con Set=true y valor nulo escriben NULL (borrado).
func (r *ActivityRepo) Update(ctx context.Context, id string, patch entity.ActivityPatch) (*entity.Activity, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.ProductID.Set {
		add("product_id", patch.ProductID.Value)
	}
	if patch.Quantity != nil {
		add("quantity", *patch.Quantity)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Note.Set {
		add("note", patch.Note.Value)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE activities SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), activityColumns,
	)

	a, err := scanActivity(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return a, nil
}

// Delete elimina una actividad (solo la usa la compensación del coordinador).
func (r *ActivityRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

// List devuelve el ledger completo. El filtrado y la paginación son del motor
// de agregación, que re-deriva en memoria sobre la colección entera.
func (r *ActivityRepo) List(ctx context.Context) ([]*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var a entity.Activity
	err := row.Scan(
		&a.ID, &a.Date, &a.Type, &a.ProductID, &a.Quantity, &a.Amount, &a.Note,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
