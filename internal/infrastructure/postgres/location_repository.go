package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Acepta pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO locations (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, nullable(l.Description), l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.get(ctx, `SELECT id, name, description, created_at, updated_at FROM locations WHERE id = $1`, id)
}

// GetForShare FOR KEY SHARE: la ubicación no puede borrarse mientras dure la transacción.
func (r *LocationRepo) GetForShare(ctx context.Context, id string) (*entity.Location, error) {
	l, err := r.get(ctx, `SELECT id, name, description, created_at, updated_at FROM locations WHERE id = $1 FOR KEY SHARE`, id)
	return l, wrapLock("location "+id, err)
}

func (r *LocationRepo) get(ctx context.Context, query, id string) (*entity.Location, error) {
	var l entity.Location
	var desc *string
	err := r.q.QueryRow(ctx, query, id).Scan(&l.ID, &l.Name, &desc, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	l.Description = deref(desc)
	return &l, nil
}

func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		var desc *string
		if err := rows.Scan(&l.ID, &l.Name, &desc, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		l.Description = deref(desc)
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		if isFKViolation(err) {
			return domain.ErrConflict
		}
		return wrapLock("location "+id, fmt.Errorf("delete location: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Kind: "location", ID: id}
	}
	return nil
}
