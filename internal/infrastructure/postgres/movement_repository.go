package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, movement_type, product_id, variant_id, from_location_id, to_location_id,
	lot_id, serial_id, quantity, reference_document_id, reference_document_type, notes,
	movement_date, created_at, created_by`

// MovementRepo log de movimientos sobre PostgreSQL. Solo INSERT y lecturas.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.Type), m.ProductID, nullable(m.VariantID), nullable(m.FromLocationID), nullable(m.ToLocationID),
		nullable(m.LotID), nullable(m.SerialID), m.Quantity, nullable(m.ReferenceDocumentID),
		nullable(m.ReferenceDocumentType), nullable(m.Notes), m.MovementDate, m.CreatedAt, nullable(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory movement: %w", err)
	}
	return m, nil
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR movement_date >= $2)
		  AND ($3::timestamptz IS NULL OR movement_date <= $3)
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	return r.list(ctx, query, productID, from, to, limit, offset)
}

func (r *MovementRepo) ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE (from_location_id = $1 OR to_location_id = $1)
		  AND ($2::timestamptz IS NULL OR movement_date >= $2)
		  AND ($3::timestamptz IS NULL OR movement_date <= $3)
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	return r.list(ctx, query, locationID, from, to, limit, offset)
}

// ListByReference docType vacío no filtra por tipo de documento.
func (r *MovementRepo) ListByReference(ctx context.Context, docType, docID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE reference_document_id = $1
		  AND ($2 = '' OR reference_document_type = $2)
		ORDER BY movement_date DESC, created_at DESC`
	return r.list(ctx, query, docID, docType)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var movementType string
	var variantID, fromID, toID, lotID, serialID, refID, refType, notes, createdBy *string
	err := row.Scan(
		&m.ID, &movementType, &m.ProductID, &variantID, &fromID, &toID,
		&lotID, &serialID, &m.Quantity, &refID, &refType, &notes,
		&m.MovementDate, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movementType)
	m.VariantID = deref(variantID)
	m.FromLocationID = deref(fromID)
	m.ToLocationID = deref(toID)
	m.LotID = deref(lotID)
	m.SerialID = deref(serialID)
	m.ReferenceDocumentID = deref(refID)
	m.ReferenceDocumentType = deref(refType)
	m.Notes = deref(notes)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
