package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/inventory/movements.
type CreateMovementRequest struct {
	MovementType          string          `json:"movement_type"`
	ProductID             string          `json:"product_id"`
	VariantID             string          `json:"variant_id,omitempty"`
	FromLocationID        string          `json:"from_location_id,omitempty"`
	ToLocationID          string          `json:"to_location_id,omitempty"`
	LotID                 string          `json:"lot_id,omitempty"`
	SerialID              string          `json:"serial_id,omitempty"`
	Quantity              decimal.Decimal `json:"quantity"`
	ReferenceDocumentID   string          `json:"reference_document_id,omitempty"`
	ReferenceDocumentType string          `json:"reference_document_type,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	MovementDate          *time.Time      `json:"movement_date,omitempty"`
}

// CreateMovementBatchRequest body para POST /api/inventory/movements/batch (todo o nada).
type CreateMovementBatchRequest struct {
	Movements []CreateMovementRequest `json:"movements"`
}

// MovementResponse salida de un movimiento persistido.
type MovementResponse struct {
	ID                    string          `json:"id"`
	MovementType          string          `json:"movement_type"`
	ProductID             string          `json:"product_id"`
	VariantID             string          `json:"variant_id,omitempty"`
	FromLocationID        string          `json:"from_location_id,omitempty"`
	ToLocationID          string          `json:"to_location_id,omitempty"`
	LotID                 string          `json:"lot_id,omitempty"`
	SerialID              string          `json:"serial_id,omitempty"`
	Quantity              decimal.Decimal `json:"quantity"`
	ReferenceDocumentID   string          `json:"reference_document_id,omitempty"`
	ReferenceDocumentType string          `json:"reference_document_type,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	MovementDate          time.Time       `json:"movement_date"`
	CreatedAt             time.Time       `json:"created_at"`
	CreatedBy             string          `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// InventoryRecordResponse cantidad materializada por clave.
type InventoryRecordResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	VariantID  string          `json:"variant_id,omitempty"`
	LocationID string          `json:"location_id"`
	LotID      string          `json:"lot_id,omitempty"`
	SerialID   string          `json:"serial_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToMovementResponse convierte la entidad en su representación JSON.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                    m.ID,
		MovementType:          string(m.Type),
		ProductID:             m.ProductID,
		VariantID:             m.VariantID,
		FromLocationID:        m.FromLocationID,
		ToLocationID:          m.ToLocationID,
		LotID:                 m.LotID,
		SerialID:              m.SerialID,
		Quantity:              m.Quantity,
		ReferenceDocumentID:   m.ReferenceDocumentID,
		ReferenceDocumentType: m.ReferenceDocumentType,
		Notes:                 m.Notes,
		MovementDate:          m.MovementDate,
		CreatedAt:             m.CreatedAt,
		CreatedBy:             m.CreatedBy,
	}
}

func ToMovementResponses(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

func ToInventoryRecordResponse(r *entity.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ID:         r.ID,
		ProductID:  r.Key.ProductID,
		VariantID:  r.Key.VariantID,
		LocationID: r.Key.LocationID,
		LotID:      r.Key.LotID,
		SerialID:   r.Key.SerialID,
		Quantity:   r.Quantity,
		UpdatedAt:  r.UpdatedAt,
	}
}
