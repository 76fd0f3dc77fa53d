package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// ListQuery ventana de fechas y paginación para consultas del log.
type ListQuery struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Normalize aplica el límite por defecto (50) y el máximo (500).
func (q *ListQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = defaultLogLimit
	}
	if q.Limit > maxLogLimit {
		q.Limit = maxLogLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// MovementLogUseCase lado de lectura del libro: historial de movimientos (auditoría) y
// stock actual, que siempre se lee de los registros materializados, nunca se recalcula.
type MovementLogUseCase struct {
	movements repository.MovementRepository
	records   repository.InventoryRecordRepository
}

// NewMovementLogUseCase construye el caso de uso de consulta.
func NewMovementLogUseCase(movements repository.MovementRepository, records repository.InventoryRecordRepository) *MovementLogUseCase {
	return &MovementLogUseCase{movements: movements, records: records}
}

// GetByID obtiene un movimiento; NotFoundError si no existe.
func (uc *MovementLogUseCase) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &domain.NotFoundError{Kind: "movement", ID: id}
	}
	return m, nil
}

func (uc *MovementLogUseCase) ListByProduct(ctx context.Context, productID string, q ListQuery) ([]*entity.Movement, error) {
	q.Normalize()
	return uc.movements.ListByProduct(ctx, productID, q.From, q.To, q.Limit, q.Offset)
}

// ListByLocation movimientos con origen o destino en la ubicación.
func (uc *MovementLogUseCase) ListByLocation(ctx context.Context, locationID string, q ListQuery) ([]*entity.Movement, error) {
	q.Normalize()
	return uc.movements.ListByLocation(ctx, locationID, q.From, q.To, q.Limit, q.Offset)
}

// ListByReference movimientos emitidos por un documento (factura, orden de producción...).
func (uc *MovementLogUseCase) ListByReference(ctx context.Context, docType, docID string) ([]*entity.Movement, error) {
	if docID == "" {
		return nil, &domain.MissingFieldError{Field: "reference_document_id"}
	}
	return uc.movements.ListByReference(ctx, docType, docID)
}

// GetRecord cantidad actual de una clave; NotFoundError si la clave nunca existió.
func (uc *MovementLogUseCase) GetRecord(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error) {
	r, err := uc.records.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &domain.NotFoundError{Kind: "inventory_record", ID: key.String()}
	}
	return r, nil
}

// ListRecords registros (incluidos los de cantidad 0) de un producto.
func (uc *MovementLogUseCase) ListRecords(ctx context.Context, productID string) ([]*entity.InventoryRecord, error) {
	return uc.records.ListByProduct(ctx, productID)
}

// ListRecordsByLocation stock materializado de una ubicación.
func (uc *MovementLogUseCase) ListRecordsByLocation(ctx context.Context, locationID string) ([]*entity.InventoryRecord, error) {
	return uc.records.ListByLocation(ctx, locationID)
}
