package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, lot_number, product_id, supplier_id, manufacture_date, expiration_date,
	initial_quantity, current_quantity, status, created_at, updated_at`

// LotRepo implementación de LotRepository sobre PostgreSQL.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Acepta pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

func (r *LotRepo) Create(ctx context.Context, l *entity.ProductLot) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `INSERT INTO product_lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.LotNumber, l.ProductID, nullable(l.SupplierID), l.ManufactureDate, l.ExpirationDate,
		l.InitialQuantity, l.CurrentQuantity, string(l.Status), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isFKViolation(err) {
			return &domain.NotFoundError{Kind: "product", ID: l.ProductID}
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product lot: %w", err)
	}
	return nil
}

func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.ProductLot, error) {
	return r.get(ctx, `SELECT `+lotColumns+` FROM product_lots WHERE id = $1`, id)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductLot, error) {
	l, err := r.get(ctx, `SELECT `+lotColumns+` FROM product_lots WHERE id = $1 FOR UPDATE`, id)
	return l, wrapLock("lot "+id, err)
}

func (r *LotRepo) UpdateState(ctx context.Context, id string, current decimal.Decimal, status entity.LotStatus) error {
	query := `
		UPDATE product_lots SET current_quantity = $2, status = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, current, string(status))
	if err != nil {
		return wrapLock("lot "+id, fmt.Errorf("update product lot: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Kind: "lot", ID: id}
	}
	return nil
}

func (r *LotRepo) get(ctx context.Context, query, id string) (*entity.ProductLot, error) {
	var l entity.ProductLot
	var supplierID *string
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.LotNumber, &l.ProductID, &supplierID, &l.ManufactureDate, &l.ExpirationDate,
		&l.InitialQuantity, &l.CurrentQuantity, &status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product lot: %w", err)
	}
	l.SupplierID = deref(supplierID)
	l.Status = entity.LotStatus(status)
	return &l, nil
}
