package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// Resultados reportados a Metrics.
const (
	OutcomeCommitted    = "committed"
	OutcomeValidation   = "validation"
	OutcomeBusinessRule = "business_rule"
	OutcomeTransient    = "transient"
	OutcomeError        = "error"
)

// RegisterMovementUseCase aplica movimientos de inventario de forma transaccional:
// valida, bloquea las filas afectadas (SELECT FOR UPDATE), actualiza registros, lote y
// serial, agrega el movimiento al log y hace Commit o Rollback como una unidad.
// No reintenta: reintentar es responsabilidad del llamador.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	catalog  Catalog
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. metrics puede ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, log *logger.Logger, metrics Metrics) *RegisterMovementUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// Quantity es magnitud positiva; solo en adjustment puede ser negativa.
type MovementInputDTO struct {
	Type                  string
	ProductID             string
	VariantID             string
	FromLocationID        string
	ToLocationID          string
	LotID                 string
	SerialID              string
	Quantity              decimal.Decimal
	ReferenceDocumentID   string
	ReferenceDocumentType string
	Notes                 string
	MovementDate          *time.Time // nil = ahora
	UserID                string
}

func (in MovementInputDTO) intent() inventory.MovementIntent {
	return inventory.MovementIntent{
		Type:           entity.MovementType(in.Type),
		ProductID:      in.ProductID,
		VariantID:      in.VariantID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		LotID:          in.LotID,
		SerialID:       in.SerialID,
		Quantity:       in.Quantity,
	}
}

// CreateMovement valida la solicitud, abre una transacción, aplica los efectos y
// devuelve el movimiento persistido. Ante cualquier error nada queda visible.
func (uc *RegisterMovementUseCase) CreateMovement(ctx context.Context, in MovementInputDTO) (*entity.Movement, error) {
	start := time.Now()
	effects, err := inventory.Resolve(in.intent())
	if err != nil {
		uc.report(in, nil, err, start)
		return nil, err
	}

	var mov *entity.Movement
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos Repositories) error {
		m, err := uc.apply(ctx, repos, in, effects)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		uc.report(in, nil, err, start)
		return nil, err
	}
	uc.report(in, mov, nil, start)
	return mov, nil
}

// CreateMovementInTx aplica un movimiento con repositorios de una transacción del llamador
// (p. ej. producción: varios production_input y un production_output). El Commit/Rollback
// queda a cargo del llamador.
func (uc *RegisterMovementUseCase) CreateMovementInTx(ctx context.Context, repos Repositories, in MovementInputDTO) (*entity.Movement, error) {
	effects, err := inventory.Resolve(in.intent())
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, repos, in, effects)
}

// CreateMovements aplica una secuencia de movimientos todo-o-nada en una sola transacción.
func (uc *RegisterMovementUseCase) CreateMovements(ctx context.Context, inputs []MovementInputDTO) ([]*entity.Movement, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	start := time.Now()
	effects := make([]inventory.EffectList, len(inputs))
	for i, in := range inputs {
		e, err := inventory.Resolve(in.intent())
		if err != nil {
			uc.report(in, nil, err, start)
			return nil, err
		}
		effects[i] = e
	}

	var out []*entity.Movement
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repositories) error {
		out = out[:0]
		for i, in := range inputs {
			m, err := uc.apply(ctx, repos, in, effects[i])
			if err != nil {
				return err
			}
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int("movements", len(inputs)).Msg("lote de movimientos revertido")
		for _, in := range inputs {
			uc.metrics.ObserveMovement(in.Type, outcomeOf(err), time.Since(start))
		}
		return nil, err
	}
	for i, in := range inputs {
		uc.report(in, out[i], nil, start)
	}
	return out, nil
}

// apply pasos 2 a 6 dentro de la transacción: catálogo, registros, lote, serial, log.
func (uc *RegisterMovementUseCase) apply(ctx context.Context, repos Repositories, in MovementInputDTO, effects inventory.EffectList) (*entity.Movement, error) {
	now := uc.now()
	movementDate := now
	if in.MovementDate != nil {
		movementDate = *in.MovementDate
	}

	// Resuelve catálogo y bloquea lote/serial antes que los registros
	refs, err := uc.catalog.Resolve(ctx, repos, in.intent())
	if err != nil {
		return nil, err
	}
	if refs.Lot != nil {
		if err := inventory.CheckLotUsable(refs.Lot, effects.ConsumesStock, movementDate); err != nil {
			return nil, err
		}
	}

	for _, e := range effects.InLockOrder() {
		if _, err := repos.Records.ApplyDelta(ctx, e.Key, e.Delta); err != nil {
			return nil, err
		}
	}

	if effects.Lot != nil {
		next, status, err := inventory.ApplyLotDelta(refs.Lot, effects.Lot.Delta)
		if err != nil {
			return nil, err
		}
		if err := repos.Lots.UpdateState(ctx, refs.Lot.ID, next, status); err != nil {
			return nil, err
		}
	}

	if effects.SerialID != "" {
		total, err := repos.Records.SumBySerial(ctx, effects.SerialID)
		if err != nil {
			return nil, err
		}
		if err := inventory.CheckSerialTotal(effects.SerialID, total); err != nil {
			return nil, err
		}
		if effects.SerialStatus != "" && effects.SerialStatus != refs.Serial.Status {
			if err := repos.Serials.UpdateStatus(ctx, refs.Serial.ID, effects.SerialStatus); err != nil {
				return nil, err
			}
		}
	}

	mov := &entity.Movement{
		ID:                    uuid.New().String(),
		Type:                  entity.MovementType(in.Type),
		ProductID:             in.ProductID,
		VariantID:             in.VariantID,
		FromLocationID:        in.FromLocationID,
		ToLocationID:          in.ToLocationID,
		LotID:                 in.LotID,
		SerialID:              in.SerialID,
		Quantity:              in.Quantity,
		ReferenceDocumentID:   in.ReferenceDocumentID,
		ReferenceDocumentType: in.ReferenceDocumentType,
		Notes:                 in.Notes,
		MovementDate:          movementDate,
		CreatedAt:             now,
		CreatedBy:             in.UserID,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func (uc *RegisterMovementUseCase) report(in MovementInputDTO, mov *entity.Movement, err error, start time.Time) {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	uc.metrics.ObserveMovement(in.Type, outcome, elapsed)

	switch outcome {
	case OutcomeCommitted:
		uc.log.Info().
			Str("movement_id", mov.ID).
			Str("type", string(mov.Type)).
			Str("product_id", mov.ProductID).
			Str("quantity", mov.Quantity.String()).
			Dur("elapsed", elapsed).
			Msg("movimiento registrado")
	case OutcomeValidation:
		uc.log.Debug().Err(err).Str("type", in.Type).Str("product_id", in.ProductID).Msg("movimiento rechazado")
	case OutcomeBusinessRule:
		uc.log.Warn().Err(err).Str("type", in.Type).Str("product_id", in.ProductID).Msg("movimiento rechazado por regla de inventario")
	case OutcomeTransient:
		uc.log.Warn().Err(err).Str("type", in.Type).Str("product_id", in.ProductID).Msg("bloqueo no obtenido, el llamador puede reintentar")
	default:
		uc.log.Error().Err(err).Str("type", in.Type).Str("product_id", in.ProductID).Msg("fallo al registrar movimiento")
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case domain.IsValidation(err):
		return OutcomeValidation
	case domain.IsBusinessRule(err):
		return OutcomeBusinessRule
	case domain.IsTransient(err), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTransient
	default:
		return OutcomeError
	}
}
