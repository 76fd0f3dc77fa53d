package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("métrica %s no registrada", name)
	return nil
}

func labelsOf(m *dto.Metric) map[string]string {
	out := make(map[string]string)
	for _, l := range m.GetLabel() {
		out[l.GetName()] = l.GetValue()
	}
	return out
}

func TestObserveMovement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "test")

	m.ObserveMovement("sale", "committed", 10*time.Millisecond)
	m.ObserveMovement("sale", "committed", 20*time.Millisecond)
	m.ObserveMovement("sale", "business_rule", time.Millisecond)

	f := family(t, reg, "test_movements_total")
	counts := make(map[string]float64)
	for _, metric := range f.GetMetric() {
		l := labelsOf(metric)
		counts[l["type"]+"/"+l["outcome"]] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, 2.0, counts["sale/committed"])
	assert.Equal(t, 1.0, counts["sale/business_rule"])

	h := family(t, reg, "test_movement_duration_seconds")
	require.NotEmpty(t, h.GetMetric())
}

func TestObserveMovement_TipoVacio(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "test")
	m.ObserveMovement("", "validation", 0)

	f := family(t, reg, "test_movements_total")
	require.Len(t, f.GetMetric(), 1)
	assert.Equal(t, "unknown", labelsOf(f.GetMetric()[0])["type"])
}

func TestMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/items/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	f := family(t, reg, "test_http_requests_total")
	require.Len(t, f.GetMetric(), 1)
	l := labelsOf(f.GetMetric()[0])
	assert.Equal(t, "/items/:id", l["path"])
	assert.Equal(t, "204", l["status"])
}
