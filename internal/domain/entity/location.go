package entity

import "time"

// Location punto físico o lógico de stock (bodega, mostrador, piso de producción).
type Location struct {
	ID          string
	Name        string // único
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
