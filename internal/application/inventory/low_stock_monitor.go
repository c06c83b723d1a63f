package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
)

// LowStockMonitor revisa periódicamente las posiciones en o bajo el mínimo, publica el total
// como métrica y envía un aviso con la reposición sugerida.
type LowStockMonitor struct {
	ledger   *Ledger
	notifier Notifier
}

// NewLowStockMonitor construye el monitor. notifier puede ser nil (sin avisos).
func NewLowStockMonitor(ledger *Ledger, notifier Notifier) *LowStockMonitor {
	return &LowStockMonitor{ledger: ledger, notifier: notifier}
}

// Suggestions lista de reposición ordenada por urgencia.
// Stock ideal = stock máximo; sin máximo, 1.5 veces el mínimo.
func (m *LowStockMonitor) Suggestions(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	low, err := m.ledger.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReplenishmentSuggestion, 0, len(low))
	for _, p := range low {
		ideal := p.MaxStock
		if ideal <= 0 {
			ideal = (p.MinStock*3 + 1) / 2
		}
		if ideal <= p.MinStock {
			ideal = p.MinStock + 1
		}
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}
		out = append(out, dto.ReplenishmentSuggestion{
			StockPositionID:   p.ID,
			ProductID:         p.ProductID,
			ProductName:       p.ProductName,
			WarehouseName:     p.WarehouseName,
			CurrentStock:      p.Quantity,
			MinStock:          p.MinStock,
			SuggestedOrderQty: suggested,
		})
	}

	// Primero los agotados, luego el mayor déficit bajo el mínimo, luego por nombre.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		defA, defB := a.MinStock-a.CurrentStock, b.MinStock-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.ProductName < b.ProductName
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}

// Run ejecuta un escaneo: actualiza la métrica y notifica si hay posiciones bajas.
// Devuelve cuántas posiciones están bajo el mínimo.
func (m *LowStockMonitor) Run(ctx context.Context) (int, error) {
	items, err := m.Suggestions(ctx)
	if err != nil {
		return 0, err
	}
	m.ledger.metrics.LowStockPositions(len(items))
	if len(items) == 0 || m.notifier == nil {
		return len(items), nil
	}
	return len(items), m.notifier.NotifyLowStock(ctx, items)
}
