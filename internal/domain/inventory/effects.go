package inventory

import (
	"sort"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementIntent forma de la solicitud que necesita el resolver (sin metadatos de auditoría).
type MovementIntent struct {
	Type           entity.MovementType
	ProductID      string
	VariantID      string
	FromLocationID string
	ToLocationID   string
	LotID          string
	SerialID       string
	Quantity       decimal.Decimal
}

// Effect delta con signo sobre un registro de inventario.
type Effect struct {
	Key   entity.InventoryKey
	Delta decimal.Decimal
}

// LotEffect delta a aplicar sobre la cantidad acumulada de un lote.
type LotEffect struct {
	LotID string
	Delta decimal.Decimal
}

// EffectList efectos que implica un movimiento, en el orden de la tabla de reglas.
type EffectList struct {
	Effects      []Effect
	Lot          *LotEffect          // nil: el lote no cambia
	SerialID     string              // vacío: sin serial
	SerialStatus entity.SerialStatus // vacío: el estado del serial no cambia
	// ConsumesStock el movimiento saca unidades vendibles (venta, consumo de producción).
	ConsumesStock bool
}

// InLockOrder copia de los efectos ordenada por clave canónica. Todos los movimientos
// bloquean registros en este orden, así dos traslados opuestos no se interbloquean.
func (l EffectList) InLockOrder() []Effect {
	out := make([]Effect, len(l.Effects))
	copy(out, l.Effects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}

// QuantityScale decimales que admite una cantidad persistida.
const QuantityScale int32 = 4

// maxQuantity cota exclusiva del valor absoluto: 14 dígitos enteros.
var maxQuantity = decimal.New(1, 14)

// CheckQuantityPrecision rechaza cantidades que el almacén tendría que redondear.
func CheckQuantityPrecision(field string, q decimal.Decimal) error {
	if !q.Equal(q.Truncate(QuantityScale)) {
		return &domain.InvariantViolationError{Reason: field + " supports at most 4 decimal places"}
	}
	if q.Abs().GreaterThanOrEqual(maxQuantity) {
		return &domain.InvariantViolationError{Reason: field + " out of range"}
	}
	return nil
}

type side int

const (
	sideFrom side = iota
	sideTo
)

type leg struct {
	side side
	sign int64
}

// rule fila de la tabla de efectos. Agregar un tipo de movimiento es agregar una fila.
type rule struct {
	legs          []leg
	lotSign       int64               // 0: sin efecto en lote
	serialStatus  entity.SerialStatus // vacío: sin transición
	signed        bool                // la cantidad puede ser negativa (ajuste)
	consumesStock bool
}

var rules = map[entity.MovementType]rule{
	entity.MovementTypeReception: {
		legs:         []leg{{sideTo, 1}},
		lotSign:      1,
		serialStatus: entity.SerialStatusAvailable,
	},
	entity.MovementTypeSale: {
		legs:          []leg{{sideFrom, -1}},
		lotSign:       -1,
		serialStatus:  entity.SerialStatusSold,
		consumesStock: true,
	},
	entity.MovementTypeTransfer: {
		legs: []leg{{sideFrom, -1}, {sideTo, 1}},
	},
	entity.MovementTypeProductionInput: {
		legs:          []leg{{sideFrom, -1}},
		lotSign:       -1,
		serialStatus:  entity.SerialStatusInUse,
		consumesStock: true,
	},
	entity.MovementTypeProductionOutput: {
		legs:         []leg{{sideTo, 1}},
		lotSign:      1,
		serialStatus: entity.SerialStatusAvailable,
	},
	entity.MovementTypeAdjustment: {
		legs:    []leg{{sideFrom, 1}},
		lotSign: 1,
		signed:  true,
	},
	entity.MovementTypeLoss: {
		legs:         []leg{{sideFrom, -1}},
		lotSign:      -1,
		serialStatus: entity.SerialStatusDamaged,
	},
}

// IsSupported indica si el tipo tiene una fila en la tabla de efectos.
func IsSupported(t entity.MovementType) bool {
	_, ok := rules[t]
	return ok
}

// Resolve valida la forma de la solicitud y calcula sus efectos. Función pura:
// no consulta el catálogo ni el estado del inventario.
func Resolve(in MovementIntent) (EffectList, error) {
	if in.Type == "" {
		return EffectList{}, &domain.MissingFieldError{Field: "movement_type"}
	}
	r, ok := rules[in.Type]
	if !ok {
		return EffectList{}, &domain.InvalidMovementTypeError{Type: string(in.Type)}
	}
	if in.ProductID == "" {
		return EffectList{}, &domain.MissingFieldError{Field: "product_id"}
	}
	for _, l := range r.legs {
		if l.side == sideFrom && in.FromLocationID == "" {
			return EffectList{}, &domain.MissingFieldError{Field: "from_location_id"}
		}
		if l.side == sideTo && in.ToLocationID == "" {
			return EffectList{}, &domain.MissingFieldError{Field: "to_location_id"}
		}
	}
	if in.Quantity.IsZero() {
		return EffectList{}, &domain.MissingFieldError{Field: "quantity"}
	}
	if err := CheckQuantityPrecision("quantity", in.Quantity); err != nil {
		return EffectList{}, err
	}
	if !r.signed && in.Quantity.IsNegative() {
		return EffectList{}, &domain.InvariantViolationError{Reason: "quantity must be positive"}
	}
	if in.SerialID != "" && !in.Quantity.Equal(decimal.NewFromInt(1)) {
		return EffectList{}, &domain.InvariantViolationError{Reason: "serial quantity must be 1"}
	}
	if len(r.legs) > 1 && in.FromLocationID == in.ToLocationID {
		return EffectList{}, &domain.InvariantViolationError{Reason: "transfer requires distinct locations"}
	}

	out := EffectList{
		Effects:       make([]Effect, 0, len(r.legs)),
		SerialID:      in.SerialID,
		ConsumesStock: r.consumesStock,
	}
	for _, l := range r.legs {
		key := entity.InventoryKey{
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			LotID:     in.LotID,
			SerialID:  in.SerialID,
		}
		if l.side == sideFrom {
			key.LocationID = in.FromLocationID
		} else {
			key.LocationID = in.ToLocationID
		}
		out.Effects = append(out.Effects, Effect{Key: key, Delta: in.Quantity.Mul(decimal.NewFromInt(l.sign))})
	}
	if in.LotID != "" && r.lotSign != 0 {
		out.Lot = &LotEffect{LotID: in.LotID, Delta: in.Quantity.Mul(decimal.NewFromInt(r.lotSign))}
	}
	if in.SerialID != "" {
		out.SerialStatus = r.serialStatus
	}
	return out, nil
}
