package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementTypeReception        MovementType = "reception"
	MovementTypeSale             MovementType = "sale"
	MovementTypeTransfer         MovementType = "transfer"
	MovementTypeProductionInput  MovementType = "production_input"
	MovementTypeProductionOutput MovementType = "production_output"
	MovementTypeAdjustment       MovementType = "adjustment"
	MovementTypeLoss             MovementType = "loss"
)

// Movement registro inmutable de un evento que cambió el stock.
// Las correcciones se hacen con un movimiento compensatorio, nunca editando.
type Movement struct {
	ID                    string
	Type                  MovementType
	ProductID             string
	VariantID             string
	FromLocationID        string
	ToLocationID          string
	LotID                 string
	SerialID              string
	Quantity              decimal.Decimal // magnitud positiva; con signo solo en adjustment
	ReferenceDocumentID   string
	ReferenceDocumentType string
	Notes                 string
	MovementDate          time.Time
	CreatedAt             time.Time
	CreatedBy             string
}
