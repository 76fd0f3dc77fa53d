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

var _ repository.SerialRepository = (*SerialRepo)(nil)

// SerialRepo implementación de SerialRepository sobre PostgreSQL.
type SerialRepo struct {
	q Querier
}

func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

func (r *SerialRepo) Create(ctx context.Context, s *entity.ProductSerial) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_serials (id, serial_number, product_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.SerialNumber, s.ProductID, string(s.Status), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isFKViolation(err) {
			return &domain.NotFoundError{Kind: "product", ID: s.ProductID}
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product serial: %w", err)
	}
	return nil
}

func (r *SerialRepo) GetByID(ctx context.Context, id string) (*entity.ProductSerial, error) {
	return r.get(ctx, `
		SELECT id, serial_number, product_id, status, created_at, updated_at
		FROM product_serials WHERE id = $1`, id)
}

func (r *SerialRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductSerial, error) {
	s, err := r.get(ctx, `
		SELECT id, serial_number, product_id, status, created_at, updated_at
		FROM product_serials WHERE id = $1 FOR UPDATE`, id)
	return s, wrapLock("serial "+id, err)
}

func (r *SerialRepo) UpdateStatus(ctx context.Context, id string, status entity.SerialStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE product_serials SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return wrapLock("serial "+id, fmt.Errorf("update product serial: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Kind: "serial", ID: id}
	}
	return nil
}

func (r *SerialRepo) get(ctx context.Context, query, id string) (*entity.ProductSerial, error) {
	var s entity.ProductSerial
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.SerialNumber, &s.ProductID, &status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product serial: %w", err)
	}
	s.Status = entity.SerialStatus(status)
	return &s, nil
}
