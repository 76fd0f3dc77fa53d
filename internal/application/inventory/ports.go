package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Repositories repositorios atados a una misma transacción de BD.
// Se pasa explícitamente a cada llamada; nunca se comparte entre solicitudes.
type Repositories struct {
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Lots      repository.LotRepository
	Serials   repository.SerialRepository
	Records   repository.InventoryRecordRepository
	Movements repository.MovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso. Garantiza atomicidad para el libro de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Metrics observador de resultados del orquestador (Prometheus en producción).
type Metrics interface {
	ObserveMovement(movementType, outcome string, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveMovement(string, string, time.Duration) {}
