package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus estado del ciclo de vida de un lote.
type LotStatus string

const (
	LotStatusAvailable LotStatus = "available"
	LotStatusDepleted  LotStatus = "depleted"
	LotStatusExpired   LotStatus = "expired"
	LotStatusBlocked   LotStatus = "blocked"
)

// ProductLot lote de un producto con fechas y cantidad acumulada.
// Invariante: 0 <= CurrentQuantity <= InitialQuantity.
// CurrentQuantity y Status solo cambian al aplicar movimientos.
type ProductLot struct {
	ID              string
	LotNumber       string
	ProductID       string
	SupplierID      string
	ManufactureDate *time.Time
	ExpirationDate  *time.Time
	InitialQuantity decimal.Decimal
	CurrentQuantity decimal.Decimal
	Status          LotStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ExpiredAt indica si el lote ya venció en la fecha dada.
func (l *ProductLot) ExpiredAt(t time.Time) bool {
	return l.ExpirationDate != nil && l.ExpirationDate.Before(t)
}
