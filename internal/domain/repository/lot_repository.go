package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LotRepository define el puerto de persistencia para ProductLot.
// UpdateState es de uso exclusivo del orquestador de movimientos.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.ProductLot) error
	GetByID(ctx context.Context, id string) (*entity.ProductLot, error)
	// GetForUpdate obtiene el lote y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductLot, error)
	UpdateState(ctx context.Context, id string, current decimal.Decimal, status entity.LotStatus) error
}
