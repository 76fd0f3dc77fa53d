package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus variantes (DIP).
// GetByID/GetVariant devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForShare lee el producto y lo protege de un borrado concurrente hasta el fin
	// de la transacción (FOR KEY SHARE).
	GetForShare(ctx context.Context, id string) (*entity.Product, error)
	CreateVariant(ctx context.Context, variant *entity.ProductVariant) error
	GetVariant(ctx context.Context, id string) (*entity.ProductVariant, error)
	// Delete falla con domain.ErrConflict si el producto tiene historial de stock.
	Delete(ctx context.Context, id string) error
}
