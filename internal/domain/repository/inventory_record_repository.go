package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRecordRepository define el puerto del almacén de registros de inventario.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRecordRepository interface {
	// Get lectura sin bloqueo; (nil, nil) si la clave nunca existió.
	Get(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error)
	// GetOrCreate devuelve la fila existente o una nueva con cantidad 0, bloqueada
	// hasta el fin de la transacción.
	GetOrCreate(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error)
	// ApplyDelta lee la cantidad bajo bloqueo exclusivo de la clave, suma delta y
	// persiste. Falla con *domain.InsufficientStockError si el resultado es negativo.
	ApplyDelta(ctx context.Context, key entity.InventoryKey, delta decimal.Decimal) (*entity.InventoryRecord, error)
	// SumBySerial cantidad total del serial en todas las ubicaciones.
	SumBySerial(ctx context.Context, serialID string) (decimal.Decimal, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryRecord, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryRecord, error)
}
