package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
)

var _ inventory.Notifier = (*LogNotifier)(nil)

// LogNotifier registra el aviso cuando no hay SMTP configurado.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyLowStock(_ context.Context, items []dto.ReplenishmentSuggestion) error {
	for _, it := range items {
		n.log.Warn().
			Int("prioridad", it.Priority).
			Int64("producto_inventario_id", it.StockPositionID).
			Str("producto", it.ProductName).
			Str("almacen", it.WarehouseName).
			Int64("cantidad", it.CurrentStock).
			Int64("stock_minimo", it.MinStock).
			Int64("sugerido", it.SuggestedOrderQty).
			Msg("bajo stock")
	}
	return nil
}
