package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryKey clave compuesta de un registro de inventario.
// Los campos opcionales vacíos equivalen a NULL.
type InventoryKey struct {
	ProductID  string
	VariantID  string
	LocationID string
	LotID      string
	SerialID   string
}

// String forma canónica de la clave; también define el orden de bloqueo.
func (k InventoryKey) String() string {
	return strings.Join([]string{k.ProductID, k.VariantID, k.LocationID, k.LotID, k.SerialID}, "/")
}

// InventoryRecord cantidad materializada para una clave. Se crea en el primer
// movimiento que la toca y nunca se elimina (cantidad 0 != "nunca existió").
type InventoryRecord struct {
	ID        string
	Key       InventoryKey
	Quantity  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
