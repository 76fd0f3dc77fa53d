package entity

import "time"

// SerialStatus estado de una unidad serializada.
type SerialStatus string

const (
	SerialStatusAvailable SerialStatus = "available"
	SerialStatusSold      SerialStatus = "sold"
	SerialStatusInUse     SerialStatus = "in_use"
	SerialStatusDamaged   SerialStatus = "damaged"
)

// ProductSerial unidad individual identificada por número de serie.
// Su cantidad total en inventario es siempre 0 o 1.
type ProductSerial struct {
	ID           string
	SerialNumber string // único
	ProductID    string
	Status       SerialStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
