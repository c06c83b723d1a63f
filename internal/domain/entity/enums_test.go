package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/domain"
)

func TestParseMovementKind_AceptaAliasEnEspanol(t *testing.T) {
	cases := map[string]MovementKind{
		"ENTRY":    MovementEntry,
		"entrada":  MovementEntry,
		" SALIDA ": MovementExit,
		"AJUSTE":   MovementAdjustment,
		"traslado": MovementTransfer,
	}
	for raw, want := range cases {
		got, err := ParseMovementKind(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseEnum_ValorDesconocido_EsErrorDeValidacion(t *testing.T) {
	_, err := ParseSaleType("FIADO")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = ParsePaymentMethod("")
	assert.True(t, errors.Is(err, domain.ErrInvalidEnum))
}

func TestParseOrderStatus_VacioEsPendiente(t *testing.T) {
	st, err := ParseOrderStatus("")
	require.NoError(t, err)
	assert.Equal(t, OrderPending, st)

	st, err = ParseOrderStatus("en_proceso")
	require.NoError(t, err)
	assert.Equal(t, OrderInProgress, st)
}

func TestInitialStatus_CreditoQuedaPendiente(t *testing.T) {
	assert.Equal(t, SalePending, InitialStatus(SaleCredit))
	assert.Equal(t, SaleCompleted, InitialStatus(SaleCash))
}

func TestStockKey_Less(t *testing.T) {
	a := StockKey{ProductID: 1, WarehouseID: 9}
	b := StockKey{ProductID: 2, WarehouseID: 1}
	c := StockKey{ProductID: 2, WarehouseID: 3}
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(b))
}
