package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

func TestMovementLog_ConsultasPorProductoYUbicacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		date := base.Add(time.Duration(i) * time.Hour)
		_, err := f.uc.CreateMovement(ctx, inventory.MovementInputDTO{
			Type: "reception", ProductID: f.product.ID, ToLocationID: f.warehouse.ID, Quantity: qty(10), MovementDate: &date,
		})
		require.NoError(t, err)
	}
	date := base.Add(5 * time.Hour)
	tr, err := f.uc.CreateMovement(ctx, inventory.MovementInputDTO{
		Type: "transfer", ProductID: f.product.ID, FromLocationID: f.warehouse.ID, ToLocationID: f.shop.ID, Quantity: qty(5), MovementDate: &date,
	})
	require.NoError(t, err)

	all, err := f.log.ListByProduct(ctx, f.product.ID, inventory.ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, tr.ID, all[0].ID, "orden por fecha descendente")

	page, err := f.log.ListByProduct(ctx, f.product.ID, inventory.ListQuery{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[1].ID, page[0].ID)

	from := base.Add(30 * time.Minute)
	to := base.Add(90 * time.Minute)
	window, err := f.log.ListByProduct(ctx, f.product.ID, inventory.ListQuery{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, window, 1)

	atShop, err := f.log.ListByLocation(ctx, f.shop.ID, inventory.ListQuery{})
	require.NoError(t, err)
	require.Len(t, atShop, 1)
	assert.Equal(t, tr.ID, atShop[0].ID)

	atWarehouse, err := f.log.ListByLocation(ctx, f.warehouse.ID, inventory.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, atWarehouse, 4, "incluye el traslado por su origen")
}

func TestMovementLog_GetByIDYRegistros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, f.warehouse, 7)

	movs, err := f.log.ListByProduct(ctx, f.product.ID, inventory.ListQuery{})
	require.NoError(t, err)
	require.Len(t, movs, 1)

	got, err := f.log.GetByID(ctx, movs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeReception, got.Type)

	_, err = f.log.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rec, err := f.log.GetRecord(ctx, f.key(f.warehouse))
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(qty(7)))

	_, err = f.log.GetRecord(ctx, f.key(f.shop))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.log.ListByReference(ctx, "invoice", "")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestMovementLog_RegistroEnCeroSigueExistiendo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, f.warehouse, 3)

	_, err := f.uc.CreateMovement(ctx, inventory.MovementInputDTO{
		Type: "sale", ProductID: f.product.ID, FromLocationID: f.warehouse.ID, Quantity: qty(3),
	})
	require.NoError(t, err)

	rec, err := f.log.GetRecord(ctx, f.key(f.warehouse))
	require.NoError(t, err)
	assert.True(t, rec.Quantity.IsZero())

	records, err := f.log.ListRecords(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
