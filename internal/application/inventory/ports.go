package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
)

// LowStockCache caché de la lista de bajo stock. Una implementación nil-safe es NopCache.
type LowStockCache interface {
	Get(ctx context.Context) ([]dto.StockPositionResponse, bool)
	Set(ctx context.Context, list []dto.StockPositionResponse)
	Invalidate(ctx context.Context)
}

// Metrics contadores de mutaciones de stock.
type Metrics interface {
	StockMutation(kind string)
	LowStockPositions(n int)
}

// Notifier envía el aviso de bajo stock.
type Notifier interface {
	NotifyLowStock(ctx context.Context, items []dto.ReplenishmentSuggestion) error
}

// NopCache no cachea nada.
type NopCache struct{}

func (NopCache) Get(context.Context) ([]dto.StockPositionResponse, bool) { return nil, false }
func (NopCache) Set(context.Context, []dto.StockPositionResponse)        {}
func (NopCache) Invalidate(context.Context)                              {}

// NopMetrics descarta las métricas.
type NopMetrics struct{}

func (NopMetrics) StockMutation(string)  {}
func (NopMetrics) LowStockPositions(int) {}
