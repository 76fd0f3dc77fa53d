package domain

import (
	"errors"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	ErrMismatchedOwnership = errors.New("el lote o serial no pertenece al producto")
	ErrMissingField        = errors.New("campo requerido ausente")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInvariantViolation  = errors.New("invariante de inventario violada")
	ErrLockTimeout         = errors.New("tiempo de espera de bloqueo agotado")
)

// NotFoundError indica que un id referenciado no existe en el catálogo.
type NotFoundError struct {
	Kind string // product, variant, location, lot, serial, movement
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MismatchedOwnershipError lote/serial/variante de otro producto.
type MismatchedOwnershipError struct {
	Kind            string
	ID              string
	OwnerProductID  string
	ExpectedProduct string
}

func (e *MismatchedOwnershipError) Error() string {
	return fmt.Sprintf("%s %q pertenece al producto %q, no a %q", e.Kind, e.ID, e.OwnerProductID, e.ExpectedProduct)
}

func (e *MismatchedOwnershipError) Is(target error) bool { return target == ErrMismatchedOwnership }

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("campo requerido: %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

type InvalidMovementTypeError struct {
	Type string
}

func (e *InvalidMovementTypeError) Error() string {
	return fmt.Sprintf("tipo de movimiento no soportado: %q", e.Type)
}

func (e *InvalidMovementTypeError) Is(target error) bool { return target == ErrInvalidMovementType }

// InvariantViolationError regla de negocio que el estado actual no permite.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "invariante violada: " + e.Reason
}

func (e *InvariantViolationError) Is(target error) bool { return target == ErrInvariantViolation }

// InsufficientStockError el delta dejaría la cantidad de la clave por debajo de cero.
type InsufficientStockError struct {
	Key       entity.InventoryKey
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s: disponible %s, solicitado %s",
		e.Key, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// LockTimeoutError no se obtuvo el bloqueo de fila dentro del tiempo configurado.
// Es transitorio: el llamador puede reintentar la solicitud completa.
type LockTimeoutError struct {
	Resource string
	Err      error
}

func (e *LockTimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bloqueo no obtenido sobre %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("bloqueo no obtenido sobre %s", e.Resource)
}

func (e *LockTimeoutError) Is(target error) bool { return target == ErrLockTimeout }

func (e *LockTimeoutError) Unwrap() error { return e.Err }

// IsValidation errores del llamador: se reportan de inmediato y nunca se reintentan.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidMovementType) ||
		errors.Is(err, ErrMismatchedOwnership) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput)
}

// IsBusinessRule violaciones que reflejan el estado real; deben mostrarse al usuario.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrInvariantViolation)
}

// IsTransient fallos de infraestructura; solo es seguro reintentar la solicitud completa.
func IsTransient(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}
