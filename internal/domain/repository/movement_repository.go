package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el log de movimientos.
// Solo inserción: no hay Update ni Delete.
// Los listados se ordenan por movement_date DESC.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListByLocation incluye movimientos con origen o destino en la ubicación.
	ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByReference(ctx context.Context, docType, docID string) ([]*entity.Movement, error)
}
