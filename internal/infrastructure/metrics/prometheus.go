// Package metrics expone contadores e histogramas Prometheus del libro de inventario.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
)

var _ inventory.Metrics = (*Ledger)(nil)

// Ledger métricas del orquestador de movimientos y de la capa HTTP.
type Ledger struct {
	movementsTotal      *prometheus.CounterVec
	movementDuration    *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registra las métricas en reg con el prefijo dado (ej. "ledger").
func New(reg prometheus.Registerer, prefix string) *Ledger {
	factory := promauto.With(reg)
	return &Ledger{
		movementsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_movements_total",
				Help: "Movimientos procesados por tipo y resultado",
			},
			[]string{"type", "outcome"},
		),
		movementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_movement_duration_seconds",
				Help:    "Duración de la transacción de un movimiento",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type", "outcome"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}

// ObserveMovement implementa inventory.Metrics.
func (m *Ledger) ObserveMovement(movementType, outcome string, elapsed time.Duration) {
	if movementType == "" {
		movementType = "unknown"
	}
	m.movementsTotal.WithLabelValues(movementType, outcome).Inc()
	m.movementDuration.WithLabelValues(movementType, outcome).Observe(elapsed.Seconds())
}

// Middleware registra método, ruta y status de cada request.
func (m *Ledger) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.httpRequestsTotal.WithLabelValues(labels...).Inc()
		m.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
