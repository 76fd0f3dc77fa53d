package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// SerialRepository define el puerto de persistencia para ProductSerial.
// UpdateStatus es de uso exclusivo del orquestador de movimientos.
type SerialRepository interface {
	Create(ctx context.Context, serial *entity.ProductSerial) error
	GetByID(ctx context.Context, id string) (*entity.ProductSerial, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ProductSerial, error)
	UpdateStatus(ctx context.Context, id string, status entity.SerialStatus) error
}
