package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
)

type recordingNotifier struct {
	calls [][]dto.ReplenishmentSuggestion
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, items []dto.ReplenishmentSuggestion) error {
	n.calls = append(n.calls, items)
	return nil
}

type gaugeMetrics struct {
	inventory.NopMetrics
	low int
}

func (m *gaugeMetrics) LowStockPositions(n int) { m.low = n }

func TestLowStockMonitor_NotificaYOrdenaPorUrgencia(t *testing.T) {
	f := newFixture(t)
	metrics := &gaugeMetrics{low: -1}
	f.ledger = inventory.NewLedger(f.store.TxRunner(), f.store.Reader(), nil, metrics)
	f.init(t, 1, 1, 3, 5)
	f.init(t, 2, 1, 0, 4)
	f.init(t, 2, 2, 40, 4)

	notifier := &recordingNotifier{}
	n, err := inventory.NewLowStockMonitor(f.ledger, notifier).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, metrics.low)

	require.Len(t, notifier.calls, 1)
	items := notifier.calls[0]
	require.Len(t, items, 2)
	assert.Equal(t, "Destornillador", items[0].ProductName, "agotado primero")
	assert.Equal(t, 1, items[0].Priority)
	assert.Equal(t, int64(6), items[0].SuggestedOrderQty)
	assert.Equal(t, int64(5), items[1].SuggestedOrderQty)
}

func TestLowStockMonitor_SinPosicionesBajasNoNotifica(t *testing.T) {
	f := newFixture(t)
	f.init(t, 1, 1, 30, 5)
	notifier := &recordingNotifier{}

	n, err := inventory.NewLowStockMonitor(f.ledger, notifier).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, notifier.calls)
}
