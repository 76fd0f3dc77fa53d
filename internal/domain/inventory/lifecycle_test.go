package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
)

func newLot(current, initial int64, status entity.LotStatus) *entity.ProductLot {
	return &entity.ProductLot{ID: "L1", ProductID: "P", CurrentQuantity: qty(current), InitialQuantity: qty(initial), Status: status}
}

func TestApplyLotDelta_EstadoDerivado(t *testing.T) {
	next, status, err := inventory.ApplyLotDelta(newLot(0, 10, entity.LotStatusDepleted), qty(4))
	require.NoError(t, err)
	assert.True(t, next.Equal(qty(4)))
	assert.Equal(t, entity.LotStatusAvailable, status)

	next, status, err = inventory.ApplyLotDelta(newLot(4, 10, entity.LotStatusAvailable), qty(-4))
	require.NoError(t, err)
	assert.True(t, next.IsZero())
	assert.Equal(t, entity.LotStatusDepleted, status)
}

func TestApplyLotDelta_EstadosManualesSeConservan(t *testing.T) {
	_, status, err := inventory.ApplyLotDelta(newLot(5, 10, entity.LotStatusBlocked), qty(-5))
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusBlocked, status)

	_, status, err = inventory.ApplyLotDelta(newLot(5, 10, entity.LotStatusExpired), qty(1))
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusExpired, status)
}

func TestApplyLotDelta_Limites(t *testing.T) {
	_, _, err := inventory.ApplyLotDelta(newLot(3, 10, entity.LotStatusAvailable), qty(-4))
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	_, _, err = inventory.ApplyLotDelta(newLot(8, 10, entity.LotStatusAvailable), qty(3))
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	next, _, err := inventory.ApplyLotDelta(newLot(8, 10, entity.LotStatusAvailable), qty(2))
	require.NoError(t, err)
	assert.True(t, next.Equal(qty(10)))
}

func TestCheckLotUsable(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	assert.NoError(t, inventory.CheckLotUsable(newLot(5, 10, entity.LotStatusBlocked), false, now), "sin consumo no se valida")
	assert.ErrorIs(t, inventory.CheckLotUsable(newLot(5, 10, entity.LotStatusBlocked), true, now), domain.ErrInvariantViolation)
	assert.ErrorIs(t, inventory.CheckLotUsable(newLot(5, 10, entity.LotStatusExpired), true, now), domain.ErrInvariantViolation)

	vencido := newLot(5, 10, entity.LotStatusAvailable)
	vencido.ExpirationDate = &yesterday
	assert.ErrorIs(t, inventory.CheckLotUsable(vencido, true, now), domain.ErrInvariantViolation)
	assert.NoError(t, inventory.CheckLotUsable(vencido, true, yesterday.Add(-time.Hour)))
}

func TestCheckSerialTotal(t *testing.T) {
	assert.NoError(t, inventory.CheckSerialTotal("S", qty(0)))
	assert.NoError(t, inventory.CheckSerialTotal("S", qty(1)))
	assert.ErrorIs(t, inventory.CheckSerialTotal("S", qty(2)), domain.ErrInvariantViolation)
}
