package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	CategoryID string          `json:"category_id,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	CategoryID string          `json:"category_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateVariantRequest entrada para crear una variante de producto.
type CreateVariantRequest struct {
	Name string `json:"name"`
	SKU  string `json:"sku,omitempty"`
}

type VariantResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLocationRequest entrada para crear una ubicación (bodega, mostrador, producción).
type CreateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateLotRequest entrada para registrar un lote. La cantidad actual arranca en 0
// y solo cambia con movimientos.
type CreateLotRequest struct {
	LotNumber       string          `json:"lot_number"`
	ProductID       string          `json:"product_id"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
}

type LotResponse struct {
	ID              string          `json:"id"`
	LotNumber       string          `json:"lot_number"`
	ProductID       string          `json:"product_id"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	Status          string          `json:"status"`
}

// CreateSerialRequest entrada para registrar un número de serie.
type CreateSerialRequest struct {
	SerialNumber string `json:"serial_number"`
	ProductID    string `json:"product_id"`
}

type SerialResponse struct {
	ID           string `json:"id"`
	SerialNumber string `json:"serial_number"`
	ProductID    string `json:"product_id"`
	Status       string `json:"status"`
}
