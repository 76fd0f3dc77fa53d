package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ApplyLotDelta calcula la nueva cantidad y el estado derivado del lote.
// blocked y expired son estados manuales y se conservan; el resto se deriva de la cantidad.
func ApplyLotDelta(lot *entity.ProductLot, delta decimal.Decimal) (decimal.Decimal, entity.LotStatus, error) {
	next := lot.CurrentQuantity.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, "", &domain.InvariantViolationError{
			Reason: fmt.Sprintf("lot %s quantity would drop to %s", lot.ID, next.String()),
		}
	}
	if next.GreaterThan(lot.InitialQuantity) {
		return decimal.Zero, "", &domain.InvariantViolationError{
			Reason: fmt.Sprintf("lot %s quantity %s exceeds initial quantity %s", lot.ID, next.String(), lot.InitialQuantity.String()),
		}
	}
	switch lot.Status {
	case entity.LotStatusBlocked, entity.LotStatusExpired:
		return next, lot.Status, nil
	}
	if next.IsZero() {
		return next, entity.LotStatusDepleted, nil
	}
	return next, entity.LotStatusAvailable, nil
}

// CheckLotUsable rechaza consumir unidades de un lote bloqueado o vencido.
// Recepciones, ajustes, pérdidas y traslados sí se permiten.
func CheckLotUsable(lot *entity.ProductLot, consumes bool, at time.Time) error {
	if !consumes {
		return nil
	}
	switch {
	case lot.Status == entity.LotStatusBlocked:
		return &domain.InvariantViolationError{Reason: fmt.Sprintf("lot %s is blocked", lot.ID)}
	case lot.Status == entity.LotStatusExpired || lot.ExpiredAt(at):
		return &domain.InvariantViolationError{Reason: fmt.Sprintf("lot %s is expired", lot.ID)}
	}
	return nil
}

// CheckSerialTotal un serial ocupa como máximo una unidad en todo el inventario.
func CheckSerialTotal(serialID string, total decimal.Decimal) error {
	if total.GreaterThan(decimal.NewFromInt(1)) {
		return &domain.InvariantViolationError{Reason: fmt.Sprintf("serial %s already in stock", serialID)}
	}
	return nil
}
