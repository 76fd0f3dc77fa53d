package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// CreateMovementFromRequest adapta el request HTTP al caso de uso CreateMovement(ctx, MovementInputDTO).
// Usar desde handlers HTTP o desde otros casos de uso que tengan userID y dto.CreateMovementRequest.
func (uc *RegisterMovementUseCase) CreateMovementFromRequest(ctx context.Context, userID string, in dto.CreateMovementRequest) (*entity.Movement, error) {
	return uc.CreateMovement(ctx, inputFromRequest(userID, in))
}

// CreateMovementsFromRequest igual que CreateMovementFromRequest para un lote todo-o-nada.
func (uc *RegisterMovementUseCase) CreateMovementsFromRequest(ctx context.Context, userID string, in dto.CreateMovementBatchRequest) ([]*entity.Movement, error) {
	inputs := make([]MovementInputDTO, 0, len(in.Movements))
	for _, m := range in.Movements {
		inputs = append(inputs, inputFromRequest(userID, m))
	}
	return uc.CreateMovements(ctx, inputs)
}

func inputFromRequest(userID string, in dto.CreateMovementRequest) MovementInputDTO {
	return MovementInputDTO{
		Type:                  in.MovementType,
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
		MovementDate:          in.MovementDate,
		UserID:                userID,
	}
}
