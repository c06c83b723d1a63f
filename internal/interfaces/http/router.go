package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/auth"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/orders"
	"github.com/jhoicas/inventario-ventas/internal/application/reports"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-ventas/pkg/logger"
)

// RouterDeps dependencias para el router. Metrics y Log son opcionales.
type RouterDeps struct {
	ServiceName string
	Ledger      *inventory.Ledger
	Monitor     *inventory.LowStockMonitor
	Adjustments *inventory.AdjustmentUseCase
	Orders      *orders.UseCase
	Sales       *sales.UseCase
	Reports     *reports.Service
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	RateLimit   string // p. ej. "100-M"; vacío = sin límite
	LoginLimit  string
	Metrics     *metrics.Registry
	Log         *logger.Logger
}

// Router registra middlewares y rutas. Lecturas públicas; escrituras con Bearer Token.
func Router(app *fiber.App, deps RouterDeps) error {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	limit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.RateLimit != "" {
		h, err := RateLimit(deps.RateLimit)
		if err != nil {
			return fmt.Errorf("rate limit %q: %w", deps.RateLimit, err)
		}
		limit = h
	}
	loginLimit := limit
	if deps.LoginLimit != "" {
		h, err := RateLimit(deps.LoginLimit)
		if err != nil {
			return fmt.Errorf("login rate limit %q: %w", deps.LoginLimit, err)
		}
		loginLimit = h
	}
	authn := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/autenticacion")
	authGroup.Post("/login", loginLimit, authHandler.Login)
	authGroup.Post("/registrar", limit, authn, RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/usuarios/me", authn, authHandler.Me)

	// Inventario (las rutas fijas antes de /:id)
	invHandler := NewInventoryHandler(deps.Ledger, deps.Monitor)
	inv := app.Group("/inventario")
	inv.Get("/", invHandler.Query)
	inv.Get("/bajo-stock", invHandler.LowStock)
	inv.Get("/reposicion", invHandler.Replenishment)
	inv.Post("/inicializar", limit, authn, invHandler.Initialize)
	inv.Get("/:id", invHandler.Get)
	inv.Post("/:id/movimiento", limit, authn, invHandler.ApplyMovement)

	// Movimientos
	movHandler := NewMovementHandler(deps.Ledger)
	mov := app.Group("/movimientos")
	mov.Get("/", movHandler.List)
	mov.Get("/:productId/historial", movHandler.History)
	mov.Post("/", limit, authn, movHandler.Create)

	// Ajustes
	adjHandler := NewAdjustmentHandler(deps.Adjustments)
	adj := app.Group("/ajustes")
	adj.Get("/", adjHandler.List)
	adj.Get("/producto/:id", adjHandler.ListByProduct)
	adj.Post("/", limit, authn, adjHandler.Create)

	// Pedidos
	orderHandler := NewOrderHandler(deps.Orders)
	ord := app.Group("/pedidos")
	ord.Get("/", orderHandler.List)
	ord.Get("/:id", orderHandler.Get)
	ord.Post("/", limit, authn, orderHandler.Create)
	ord.Put("/:id", limit, authn, orderHandler.Update)
	ord.Delete("/:id", limit, authn, orderHandler.Delete)

	// Ventas
	saleHandler := NewSaleHandler(deps.Sales)
	sal := app.Group("/ventas")
	sal.Get("/", saleHandler.List)
	sal.Get("/:id", saleHandler.Get)
	sal.Post("/", limit, authn, saleHandler.Create)
	sal.Put("/:id/cancelar", limit, authn, saleHandler.Cancel)
	sal.Put("/:id/actualizar", limit, authn, saleHandler.UpdateType)

	// Reportes
	reportHandler := NewReportHandler(deps.Reports)
	app.Post("/reportes/generar", limit, authn, reportHandler.Generate)

	return nil
}
