package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
)

func newProductUseCase() *usecase.ProductUseCase {
	repos := memory.NewStore(time.Second).Repositories()
	return usecase.NewProductUseCase(repos.Products, repos.Lots, repos.Serials)
}

func TestProductUseCase_Create(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateProductRequest{SKU: " CAF-500 ", Name: "Café 500g", SalePrice: decimal.NewFromInt(12000)})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "CAF-500", out.SKU)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "CAF-500", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", CostPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "Y", Name: "Y", SalePrice: decimal.RequireFromString("1.23456")})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestProductUseCase_CreateLot(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "LECHE", Name: "Leche"})
	require.NoError(t, err)

	mfg := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	exp := mfg.AddDate(0, 0, 20)
	lot, err := uc.CreateLot(ctx, dto.CreateLotRequest{
		LotNumber: "L-01", ProductID: p.ID, InitialQuantity: decimal.NewFromInt(200),
		ManufactureDate: &mfg, ExpirationDate: &exp,
	})
	require.NoError(t, err)
	assert.True(t, lot.CurrentQuantity.IsZero(), "la cantidad llega con recepciones")
	assert.Equal(t, "available", lot.Status)

	_, err = uc.CreateLot(ctx, dto.CreateLotRequest{LotNumber: "L-01", ProductID: p.ID, InitialQuantity: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateLot(ctx, dto.CreateLotRequest{LotNumber: "L-02", ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	before := mfg.AddDate(0, 0, -1)
	_, err = uc.CreateLot(ctx, dto.CreateLotRequest{
		LotNumber: "L-03", ProductID: p.ID, InitialQuantity: decimal.NewFromInt(1),
		ManufactureDate: &mfg, ExpirationDate: &before,
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	_, err = uc.CreateLot(ctx, dto.CreateLotRequest{LotNumber: "L-04", ProductID: "nope", InitialQuantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateLot(ctx, dto.CreateLotRequest{LotNumber: "L-05", ProductID: p.ID, InitialQuantity: decimal.RequireFromString("0.00001")})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	got, err := uc.GetLot(ctx, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, "L-01", got.LotNumber)
	_, err = uc.GetLot(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_VariantesYSeriales(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "TEL", Name: "Teléfono"})
	require.NoError(t, err)

	v, err := uc.CreateVariant(ctx, p.ID, dto.CreateVariantRequest{Name: "Negro 128GB"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProductID)

	_, err = uc.CreateVariant(ctx, "nope", dto.CreateVariantRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err := uc.CreateSerial(ctx, dto.CreateSerialRequest{SerialNumber: "IMEI-1", ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, "available", s.Status)

	_, err = uc.CreateSerial(ctx, dto.CreateSerialRequest{SerialNumber: "IMEI-1", ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetSerial(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "IMEI-1", got.SerialNumber)
	_, err = uc.GetSerial(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationUseCase(t *testing.T) {
	repos := memory.NewStore(time.Second).Repositories()
	uc := usecase.NewLocationUseCase(repos.Locations)
	ctx := context.Background()

	for _, name := range []string{"Bodega", "Almacén", "Mostrador"} {
		_, err := uc.Create(ctx, dto.CreateLocationRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	list, err := uc.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Almacén", list.Items[0].Name)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, list.Items[0].ID))
	_, err = uc.GetByID(ctx, list.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
