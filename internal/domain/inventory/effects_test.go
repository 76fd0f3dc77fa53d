package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
)

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de efectos por tipo de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_TablaDeEfectos(t *testing.T) {
	cases := []struct {
		name         string
		typ          entity.MovementType
		from, to     string
		wantLegs     map[string]int64 // location → delta
		wantLot      int64
		wantSerial   entity.SerialStatus
		wantConsumes bool
	}{
		{"reception", entity.MovementTypeReception, "", "B", map[string]int64{"B": 5}, 5, entity.SerialStatusAvailable, false},
		{"sale", entity.MovementTypeSale, "A", "", map[string]int64{"A": -5}, -5, entity.SerialStatusSold, true},
		{"transfer", entity.MovementTypeTransfer, "A", "B", map[string]int64{"A": -5, "B": 5}, 0, "", false},
		{"production_input", entity.MovementTypeProductionInput, "A", "", map[string]int64{"A": -5}, -5, entity.SerialStatusInUse, true},
		{"production_output", entity.MovementTypeProductionOutput, "", "B", map[string]int64{"B": 5}, 5, entity.SerialStatusAvailable, false},
		{"adjustment", entity.MovementTypeAdjustment, "A", "", map[string]int64{"A": 5}, 5, "", false},
		{"loss", entity.MovementTypeLoss, "A", "", map[string]int64{"A": -5}, -5, entity.SerialStatusDamaged, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := inventory.Resolve(inventory.MovementIntent{
				Type: tc.typ, ProductID: "P", FromLocationID: tc.from, ToLocationID: tc.to,
				LotID: "L", Quantity: qty(5),
			})
			require.NoError(t, err)
			require.Len(t, out.Effects, len(tc.wantLegs))
			for _, e := range out.Effects {
				want, ok := tc.wantLegs[e.Key.LocationID]
				require.True(t, ok, "ubicación inesperada %s", e.Key.LocationID)
				assert.True(t, e.Delta.Equal(qty(want)), "delta en %s: %s", e.Key.LocationID, e.Delta)
				assert.Equal(t, "P", e.Key.ProductID)
				assert.Equal(t, "L", e.Key.LotID)
			}
			if tc.wantLot == 0 {
				assert.Nil(t, out.Lot)
			} else {
				require.NotNil(t, out.Lot)
				assert.True(t, out.Lot.Delta.Equal(qty(tc.wantLot)))
			}
			assert.Equal(t, tc.wantConsumes, out.ConsumesStock)
			// sin serial no hay transición de estado
			assert.Equal(t, entity.SerialStatus(""), out.SerialStatus)
		})
	}
}

func TestResolve_SerialStatusSoloConSerial(t *testing.T) {
	out, err := inventory.Resolve(inventory.MovementIntent{
		Type: entity.MovementTypeSale, ProductID: "P", FromLocationID: "A", SerialID: "S", Quantity: qty(1),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SerialStatusSold, out.SerialStatus)
	assert.Equal(t, "S", out.SerialID)
	assert.Equal(t, "S", out.Effects[0].Key.SerialID)
	assert.Nil(t, out.Lot)
}

func TestResolve_AjusteNegativo(t *testing.T) {
	out, err := inventory.Resolve(inventory.MovementIntent{
		Type: entity.MovementTypeAdjustment, ProductID: "P", FromLocationID: "A", LotID: "L", Quantity: qty(-3),
	})
	require.NoError(t, err)
	assert.True(t, out.Effects[0].Delta.Equal(qty(-3)))
	assert.True(t, out.Lot.Delta.Equal(qty(-3)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de forma
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_CamposRequeridos(t *testing.T) {
	cases := []struct {
		name  string
		in    inventory.MovementIntent
		field string
	}{
		{"sin tipo", inventory.MovementIntent{ProductID: "P", Quantity: qty(1)}, "movement_type"},
		{"sin producto", inventory.MovementIntent{Type: entity.MovementTypeReception, ToLocationID: "B", Quantity: qty(1)}, "product_id"},
		{"reception sin destino", inventory.MovementIntent{Type: entity.MovementTypeReception, ProductID: "P", FromLocationID: "A", Quantity: qty(1)}, "to_location_id"},
		{"sale sin origen", inventory.MovementIntent{Type: entity.MovementTypeSale, ProductID: "P", ToLocationID: "B", Quantity: qty(1)}, "from_location_id"},
		{"transfer sin destino", inventory.MovementIntent{Type: entity.MovementTypeTransfer, ProductID: "P", FromLocationID: "A", Quantity: qty(1)}, "to_location_id"},
		{"adjustment sin ubicación", inventory.MovementIntent{Type: entity.MovementTypeAdjustment, ProductID: "P", Quantity: qty(1)}, "from_location_id"},
		{"cantidad cero", inventory.MovementIntent{Type: entity.MovementTypeLoss, ProductID: "P", FromLocationID: "A"}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.Resolve(tc.in)
			var mf *domain.MissingFieldError
			require.True(t, errors.As(err, &mf), "se esperaba MissingField, llegó %v", err)
			assert.Equal(t, tc.field, mf.Field)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestResolve_TipoDesconocido(t *testing.T) {
	_, err := inventory.Resolve(inventory.MovementIntent{Type: "gift", ProductID: "P", Quantity: qty(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
	assert.False(t, inventory.IsSupported("gift"))
	assert.True(t, inventory.IsSupported(entity.MovementTypeLoss))
}

func TestResolve_Invariantes(t *testing.T) {
	cases := []struct {
		name string
		in   inventory.MovementIntent
	}{
		{"serial con cantidad 2", inventory.MovementIntent{Type: entity.MovementTypeReception, ProductID: "P", ToLocationID: "B", SerialID: "S", Quantity: qty(2)}},
		{"venta negativa", inventory.MovementIntent{Type: entity.MovementTypeSale, ProductID: "P", FromLocationID: "A", Quantity: qty(-1)}},
		{"traslado a la misma ubicación", inventory.MovementIntent{Type: entity.MovementTypeTransfer, ProductID: "P", FromLocationID: "A", ToLocationID: "A", Quantity: qty(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.Resolve(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvariantViolation)
			assert.True(t, domain.IsBusinessRule(err))
		})
	}
}

func TestEffectList_InLockOrder(t *testing.T) {
	// Traslados en sentidos opuestos deben bloquear las claves en el mismo orden.
	ab, err := inventory.Resolve(inventory.MovementIntent{Type: entity.MovementTypeTransfer, ProductID: "P", FromLocationID: "A", ToLocationID: "B", Quantity: qty(1)})
	require.NoError(t, err)
	ba, err := inventory.Resolve(inventory.MovementIntent{Type: entity.MovementTypeTransfer, ProductID: "P", FromLocationID: "B", ToLocationID: "A", Quantity: qty(1)})
	require.NoError(t, err)

	assert.Equal(t, "B", ba.Effects[0].Key.LocationID, "el orden original se conserva")
	oab, oba := ab.InLockOrder(), ba.InLockOrder()
	assert.Equal(t, oab[0].Key, oba[0].Key)
	assert.Equal(t, oab[1].Key, oba[1].Key)
}

func TestResolve_PrecisionDeCantidad(t *testing.T) {
	tests := []struct {
		name  string
		typ   entity.MovementType
		value string
		ok    bool
	}{
		{"cuatro decimales", entity.MovementTypeReception, "0.0001", true},
		{"ceros de relleno", entity.MovementTypeReception, "1.50000", true},
		{"quinto decimal", entity.MovementTypeReception, "0.00001", false},
		{"ajuste negativo con cinco decimales", entity.MovementTypeAdjustment, "-2.12345", false},
		{"fuera de rango", entity.MovementTypeReception, "100000000000000", false},
		{"máximo admitido", entity.MovementTypeReception, "99999999999999.9999", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := decimal.NewFromString(tt.value)
			require.NoError(t, err)
			in := inventory.MovementIntent{Type: tt.typ, ProductID: "P", Quantity: q}
			if tt.typ == entity.MovementTypeAdjustment {
				in.FromLocationID = "A"
			} else {
				in.ToLocationID = "B"
			}
			_, err = inventory.Resolve(in)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		})
	}
}
