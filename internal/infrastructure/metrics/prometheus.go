package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
)

var (
	_ inventory.Metrics = (*Registry)(nil)
	_ sales.Metrics     = (*Registry)(nil)
)

// Registry colectores HTTP y de dominio sobre un registro propio (no el global).
type Registry struct {
	reg *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	stockMutation *prometheus.CounterVec
	salesTotal    *prometheus.CounterVec
	lowStock      prometheus.Gauge
}

// New crea y registra los colectores, incluidos los de proceso y runtime.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		stockMutation: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventario_stock_mutations_total",
				Help: "Unidades de trabajo confirmadas que cambiaron cantidades, por tipo",
			},
			[]string{"kind"},
		),
		salesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventario_sales_total",
				Help: "Intentos de venta por resultado (created, rejected, error, cancelled)",
			},
			[]string{"result"},
		),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventario_low_stock_positions",
			Help: "Posiciones en o bajo el stock mínimo en el último escaneo",
		}),
	}
	r.reg.MustRegister(
		r.httpRequests, r.httpDuration, r.stockMutation, r.salesTotal, r.lowStock,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) StockMutation(kind string) { r.stockMutation.WithLabelValues(kind).Inc() }
func (r *Registry) LowStockPositions(n int)   { r.lowStock.Set(float64(n)) }
func (r *Registry) Sale(result string)        { r.salesTotal.WithLabelValues(result).Inc() }

// Middleware cuenta peticiones y mide latencia. Usa la ruta registrada, no la URL, para acotar la cardinalidad.
func (r *Registry) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" {
			path = "undefined"
		}

		r.httpRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics en formato de texto de Prometheus.
func (r *Registry) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}

// Gatherer para pruebas.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
