package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
)

// writeError traduce errores del dominio a status y código estable.
// Validación → 400/404, regla de negocio → 409, bloqueo → 503 reintentable.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		notFound     *domain.NotFoundError
		missing      *domain.MissingFieldError
		invalidType  *domain.InvalidMovementTypeError
		mismatched   *domain.MismatchedOwnershipError
		insufficient *domain.InsufficientStockError
		invariant    *domain.InvariantViolationError
		lockTimeout  *domain.LockTimeoutError
	)
	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
			Details: map[string]any{"kind": notFound.Kind, "id": notFound.ID},
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.As(err, &missing):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: "MISSING_FIELD", Message: err.Error(),
			Details: map[string]any{"field": missing.Field},
		}
	case errors.As(err, &invalidType):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: "INVALID_MOVEMENT_TYPE", Message: err.Error(),
			Details: map[string]any{"movement_type": invalidType.Type},
		}
	case errors.As(err, &mismatched):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: "MISMATCHED_OWNERSHIP", Message: err.Error(),
			Details: map[string]any{"kind": mismatched.Kind, "id": mismatched.ID, "product_id": mismatched.ExpectedProduct},
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	case errors.As(err, &insufficient):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: err.Error(),
			Details: map[string]any{
				"product_id":  insufficient.Key.ProductID,
				"location_id": insufficient.Key.LocationID,
				"available":   insufficient.Available.String(),
				"requested":   insufficient.Requested.String(),
			},
		}
	case errors.As(err, &invariant):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code: "INVARIANT_VIOLATION", Message: err.Error(),
			Details: map[string]any{"reason": invariant.Reason},
		}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: "el recurso tiene historial de inventario"}
	case errors.As(err, &lockTimeout), domain.IsTransient(err):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: err.Error(), Retryable: true}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}
