package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value busca la serie con las etiquetas dadas; 0 si no existe.
func value(t *testing.T, r *Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matches(m, labels) {
				switch {
				case m.Counter != nil:
					return m.GetCounter().GetValue()
				case m.Gauge != nil:
					return m.GetGauge().GetValue()
				case m.Histogram != nil:
					return float64(m.GetHistogram().GetSampleCount())
				}
			}
		}
	}
	return 0
}

func matches(m *dto.Metric, labels map[string]string) bool {
	found := 0
	for _, lp := range m.GetLabel() {
		if want, ok := labels[lp.GetName()]; ok {
			if want != lp.GetValue() {
				return false
			}
			found++
		}
	}
	return found == len(labels)
}

func TestRegistry_ContadoresDeDominio(t *testing.T) {
	r := New()
	r.StockMutation("SALE")
	r.StockMutation("SALE")
	r.StockMutation("ADJUSTMENT")
	r.Sale("created")
	r.Sale("rejected")
	r.LowStockPositions(3)

	assert.Equal(t, 2.0, value(t, r, "inventario_stock_mutations_total", map[string]string{"kind": "SALE"}))
	assert.Equal(t, 1.0, value(t, r, "inventario_stock_mutations_total", map[string]string{"kind": "ADJUSTMENT"}))
	assert.Equal(t, 1.0, value(t, r, "inventario_sales_total", map[string]string{"result": "rejected"}))
	assert.Equal(t, 3.0, value(t, r, "inventario_low_stock_positions", nil))
}

func TestRegistry_MiddlewareYHandler(t *testing.T) {
	r := New()
	app := fiber.New()
	app.Use(r.Middleware())
	app.Get("/inventario/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })
	app.Get("/metrics", r.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/inventario/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1.0, value(t, r, "http_requests_total",
		map[string]string{"method": "GET", "path": "/inventario/:id", "status": "404"}))
	assert.Equal(t, 1.0, value(t, r, "http_request_duration_seconds", map[string]string{"path": "/inventario/:id"}))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "http_requests_total")
}
