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

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

const recordColumns = `id, product_id, variant_id, location_id, lot_id, serial_id, quantity, created_at, updated_at`

// La clave usa IS NOT DISTINCT FROM para que NULL = NULL, igual que el constraint
// UNIQUE NULLS NOT DISTINCT de inventory_records.
const recordKeyFilter = `product_id = $1
		AND variant_id IS NOT DISTINCT FROM $2
		AND location_id = $3
		AND lot_id IS NOT DISTINCT FROM $4
		AND serial_id IS NOT DISTINCT FROM $5`

// InventoryRecordRepo implementación de InventoryRecordRepository sobre PostgreSQL.
// GetOrCreate y ApplyDelta deben usarse con una tx: el bloqueo dura hasta Commit/Rollback.
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

func keyArgs(k entity.InventoryKey) []any {
	return []any{k.ProductID, nullable(k.VariantID), k.LocationID, nullable(k.LotID), nullable(k.SerialID)}
}

func (r *InventoryRecordRepo) Get(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error) {
	rec, err := scanRecord(r.q.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM inventory_records WHERE `+recordKeyFilter, keyArgs(key)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetOrCreate inserta la fila con cantidad 0 si no existe y la bloquea (SELECT FOR UPDATE).
// Con dos transacciones creando la misma clave, ON CONFLICT hace que la segunda espere
// al Commit de la primera y luego bloquee la fila ya existente.
func (r *InventoryRecordRepo) GetOrCreate(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error) {
	insert := `
		INSERT INTO inventory_records (id, product_id, variant_id, location_id, lot_id, serial_id, quantity)
		VALUES ($6, $1, $2, $3, $4, $5, 0)
		ON CONFLICT ON CONSTRAINT inventory_records_key DO NOTHING`
	args := append(keyArgs(key), uuid.New().String())
	if _, err := r.q.Exec(ctx, insert, args...); err != nil {
		return nil, wrapLock("record "+key.String(), fmt.Errorf("insert inventory record: %w", err))
	}

	rec, err := scanRecord(r.q.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM inventory_records WHERE `+recordKeyFilter+` FOR UPDATE`, keyArgs(key)...))
	if err != nil {
		return nil, wrapLock("record "+key.String(), fmt.Errorf("lock inventory record: %w", err))
	}
	return rec, nil
}

func (r *InventoryRecordRepo) ApplyDelta(ctx context.Context, key entity.InventoryKey, delta decimal.Decimal) (*entity.InventoryRecord, error) {
	rec, err := r.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}
	next := rec.Quantity.Add(delta)
	if next.IsNegative() {
		return nil, &domain.InsufficientStockError{Key: key, Available: rec.Quantity, Requested: delta.Neg()}
	}
	err = r.q.QueryRow(ctx,
		`UPDATE inventory_records SET quantity = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		rec.ID, next,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		return nil, wrapLock("record "+key.String(), fmt.Errorf("update inventory record: %w", err))
	}
	rec.Quantity = next
	return rec, nil
}

func (r *InventoryRecordRepo) SumBySerial(ctx context.Context, serialID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_records WHERE serial_id = $1`, serialID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory by serial: %w", err)
	}
	return total, nil
}

func (r *InventoryRecordRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE product_id = $1
		ORDER BY location_id, variant_id NULLS FIRST, lot_id NULLS FIRST, serial_id NULLS FIRST`
	list, err := r.list(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory records by product: %w", err)
	}
	return list, nil
}

// ListByLocation stock de una ubicación, todos los productos.
func (r *InventoryRecordRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE location_id = $1
		ORDER BY product_id, variant_id NULLS FIRST, lot_id NULLS FIRST, serial_id NULLS FIRST`
	list, err := r.list(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list inventory records by location: %w", err)
	}
	return list, nil
}

func (r *InventoryRecordRepo) list(ctx context.Context, query string, arg string) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	var variantID, lotID, serialID *string
	err := row.Scan(
		&rec.ID, &rec.Key.ProductID, &variantID, &rec.Key.LocationID, &lotID, &serialID,
		&rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Key.VariantID = deref(variantID)
	rec.Key.LotID = deref(lotID)
	rec.Key.SerialID = deref(serialID)
	return &rec, nil
}
