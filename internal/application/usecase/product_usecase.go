package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ProductUseCase alta de productos, variantes, lotes y seriales.
// Cantidad y estado de lotes/seriales no se escriben aquí: solo el orquestador de movimientos.
type ProductUseCase struct {
	products repository.ProductRepository
	lots     repository.LotRepository
	serials  repository.SerialRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, lots repository.LotRepository, serials repository.SerialRepository) *ProductUseCase {
	return &ProductUseCase{products: products, lots: lots, serials: serials}
}

// Create crea un nuevo producto. SKU único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.SKU) == "" {
		return nil, &domain.MissingFieldError{Field: "sku"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.MissingFieldError{Field: "name"}
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for field, price := range map[string]decimal.Decimal{"cost_price": in.CostPrice, "sale_price": in.SalePrice} {
		if err := inventory.CheckQuantityPrecision(field, price); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		SKU:        strings.TrimSpace(in.SKU),
		Name:       strings.TrimSpace(in.Name),
		CostPrice:  in.CostPrice,
		SalePrice:  in.SalePrice,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.mustProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// CreateVariant agrega una variante al producto.
func (uc *ProductUseCase) CreateVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.MissingFieldError{Field: "name"}
	}
	if _, err := uc.mustProduct(ctx, productID); err != nil {
		return nil, err
	}
	v := &entity.ProductVariant{
		ID:        uuid.New().String(),
		ProductID: productID,
		Name:      strings.TrimSpace(in.Name),
		SKU:       in.SKU,
		CreatedAt: time.Now(),
	}
	if err := uc.products.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	return &dto.VariantResponse{ID: v.ID, ProductID: v.ProductID, Name: v.Name, SKU: v.SKU, CreatedAt: v.CreatedAt}, nil
}

// CreateLot registra un lote con cantidad actual 0; la cantidad llega con recepciones.
func (uc *ProductUseCase) CreateLot(ctx context.Context, in dto.CreateLotRequest) (*dto.LotResponse, error) {
	if strings.TrimSpace(in.LotNumber) == "" {
		return nil, &domain.MissingFieldError{Field: "lot_number"}
	}
	if !in.InitialQuantity.IsPositive() {
		return nil, &domain.InvariantViolationError{Reason: "initial_quantity must be positive"}
	}
	if err := inventory.CheckQuantityPrecision("initial_quantity", in.InitialQuantity); err != nil {
		return nil, err
	}
	if in.ManufactureDate != nil && in.ExpirationDate != nil && in.ExpirationDate.Before(*in.ManufactureDate) {
		return nil, &domain.InvariantViolationError{Reason: "expiration_date before manufacture_date"}
	}
	if _, err := uc.mustProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	now := time.Now()
	lot := &entity.ProductLot{
		ID:              uuid.New().String(),
		LotNumber:       strings.TrimSpace(in.LotNumber),
		ProductID:       in.ProductID,
		SupplierID:      in.SupplierID,
		ManufactureDate: in.ManufactureDate,
		ExpirationDate:  in.ExpirationDate,
		InitialQuantity: in.InitialQuantity,
		CurrentQuantity: decimal.Zero,
		Status:          entity.LotStatusAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.lots.Create(ctx, lot); err != nil {
		return nil, err
	}
	return toLotResponse(lot), nil
}

// CreateSerial registra un número de serie (único) para el producto.
func (uc *ProductUseCase) CreateSerial(ctx context.Context, in dto.CreateSerialRequest) (*dto.SerialResponse, error) {
	if strings.TrimSpace(in.SerialNumber) == "" {
		return nil, &domain.MissingFieldError{Field: "serial_number"}
	}
	if _, err := uc.mustProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.ProductSerial{
		ID:           uuid.New().String(),
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		ProductID:    in.ProductID,
		Status:       entity.SerialStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.serials.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSerialResponse(s), nil
}

// GetLot estado actual del lote: cantidad y estado los mantiene el orquestador.
func (uc *ProductUseCase) GetLot(ctx context.Context, id string) (*dto.LotResponse, error) {
	lot, err := uc.lots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, &domain.NotFoundError{Kind: "lot", ID: id}
	}
	return toLotResponse(lot), nil
}

func (uc *ProductUseCase) GetSerial(ctx context.Context, id string) (*dto.SerialResponse, error) {
	s, err := uc.serials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &domain.NotFoundError{Kind: "serial", ID: id}
	}
	return toSerialResponse(s), nil
}

// Delete elimina un producto sin historial (domain.ErrConflict si lo tiene).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.products.Delete(ctx, id)
}

func (uc *ProductUseCase) mustProduct(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, &domain.MissingFieldError{Field: "product_id"}
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Kind: "product", ID: id}
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		CostPrice:  p.CostPrice,
		SalePrice:  p.SalePrice,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toLotResponse(l *entity.ProductLot) *dto.LotResponse {
	return &dto.LotResponse{
		ID:              l.ID,
		LotNumber:       l.LotNumber,
		ProductID:       l.ProductID,
		SupplierID:      l.SupplierID,
		ManufactureDate: l.ManufactureDate,
		ExpirationDate:  l.ExpirationDate,
		InitialQuantity: l.InitialQuantity,
		CurrentQuantity: l.CurrentQuantity,
		Status:          string(l.Status),
	}
}

func toSerialResponse(s *entity.ProductSerial) *dto.SerialResponse {
	return &dto.SerialResponse{ID: s.ID, SerialNumber: s.SerialNumber, ProductID: s.ProductID, Status: string(s.Status)}
}
