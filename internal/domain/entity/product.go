package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Una vez referenciado por un registro de inventario o un movimiento no se elimina.
type Product struct {
	ID         string
	SKU        string // único
	Name       string
	CostPrice  decimal.Decimal
	SalePrice  decimal.Decimal
	CategoryID string // vacío si no tiene categoría
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductVariant sub-identidad opcional de un producto (talla, color...).
// Siempre pertenece a exactamente un Product.
type ProductVariant struct {
	ID        string
	ProductID string
	Name      string
	SKU       string
	CreatedAt time.Time
}
