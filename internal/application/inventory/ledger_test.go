package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/memory"
)

type fixture struct {
	store  *memory.Store
	ledger *inventory.Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	s.AddProduct(entity.Product{ID: 1, Code: "MART", Name: "Martillo", Price: decimal.NewFromInt(25)})
	s.AddProduct(entity.Product{ID: 2, Code: "DEST", Name: "Destornillador", Price: decimal.NewFromInt(10)})
	s.AddWarehouse(entity.Warehouse{ID: 1, Name: "Central"})
	s.AddWarehouse(entity.Warehouse{ID: 2, Name: "Norte"})
	return &fixture{store: s, ledger: inventory.NewLedger(s.TxRunner(), s.Reader(), nil, nil)}
}

func (f *fixture) init(t *testing.T, productID, warehouseID, qty, min int64) *dto.StockPositionResponse {
	t.Helper()
	pos, err := f.ledger.Initialize(context.Background(), 1, dto.InitializeStockRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: qty, MinStock: min,
	})
	require.NoError(t, err)
	return pos
}

func (f *fixture) movements(t *testing.T) []*entity.MovementRecord {
	t.Helper()
	list, err := f.store.Reader().Movements().List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return list
}

func TestLedger_Initialize(t *testing.T) {
	f := newFixture(t)
	pos := f.init(t, 1, 1, 10, 2)

	assert.Equal(t, int64(10), pos.Quantity)
	assert.Equal(t, "Martillo", pos.ProductName)
	assert.Equal(t, "Central", pos.WarehouseName)
	assert.True(t, pos.SalePrice.Equal(decimal.NewFromInt(25)), "sin precio de venta se toma el del producto")

	movs := f.movements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementEntry, movs[0].Kind)
	assert.Equal(t, "inventario inicial", movs[0].Reason)
}

func TestLedger_InitializeDuplicado(t *testing.T) {
	f := newFixture(t)
	f.init(t, 1, 1, 10, 2)

	_, err := f.ledger.Initialize(context.Background(), 1, dto.InitializeStockRequest{ProductID: 1, WarehouseID: 1, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrDuplicatePosition)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLedger_InitializeValidaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.InitializeStockRequest
		want error
	}{
		{"cantidad negativa", dto.InitializeStockRequest{ProductID: 1, WarehouseID: 1, Quantity: -1}, domain.ErrInvalidInput},
		{"minimo mayor que maximo", dto.InitializeStockRequest{ProductID: 1, WarehouseID: 1, MinStock: 10, MaxStock: 5}, domain.ErrInvalidInput},
		{"producto inexistente", dto.InitializeStockRequest{ProductID: 99, WarehouseID: 1}, domain.ErrProductNotFound},
		{"almacen inexistente", dto.InitializeStockRequest{ProductID: 1, WarehouseID: 99}, domain.ErrWarehouseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.Initialize(ctx, 1, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLedger_SalidaMayorQueStock(t *testing.T) {
	f := newFixture(t)
	pos := f.init(t, 1, 1, 10, 2)
	before := len(f.movements(t))

	_, err := f.ledger.ApplyMovement(context.Background(), 1, pos.ID, dto.MovementRequest{Kind: "SALIDA", Quantity: 15})

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(10), insufficient.Available)
	assert.Equal(t, int64(15), insufficient.Requested)

	got, err := f.ledger.Get(context.Background(), pos.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Quantity)
	assert.Len(t, f.movements(t), before, "un movimiento rechazado no deja registro")
}

func TestLedger_EntradaYSalidaVuelvenAlValorOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pos := f.init(t, 1, 1, 10, 2)
	before := len(f.movements(t))

	_, err := f.ledger.ApplyMovement(ctx, 1, pos.ID, dto.MovementRequest{Kind: "ENTRY", Quantity: 4, Reason: "compra"})
	require.NoError(t, err)
	got, err := f.ledger.ApplyMovement(ctx, 1, pos.ID, dto.MovementRequest{Kind: "EXIT", Quantity: 4, Reason: "devolución"})
	require.NoError(t, err)

	assert.Equal(t, int64(10), got.Quantity)
	assert.Len(t, f.movements(t), before+2)
}

func TestLedger_MovimientoValidaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pos := f.init(t, 1, 1, 10, 2)

	_, err := f.ledger.ApplyMovement(ctx, 1, pos.ID, dto.MovementRequest{Kind: "ENTRY", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.ApplyMovement(ctx, 1, pos.ID, dto.MovementRequest{Kind: "REGALO", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)

	_, err = f.ledger.ApplyMovement(ctx, 1, 999, dto.MovementRequest{Kind: "ENTRY", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestLedger_Traslado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	src := f.init(t, 1, 1, 10, 0)
	dst := f.init(t, 1, 2, 0, 0)
	target := int64(2)

	got, err := f.ledger.ApplyMovement(ctx, 1, src.ID, dto.MovementRequest{Kind: "TRASLADO", Quantity: 6, TargetWarehouseID: &target})
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)

	d, err := f.ledger.Get(ctx, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), d.Quantity)

	var out, in int
	for _, m := range f.movements(t) {
		if m.Kind != entity.MovementTransfer {
			continue
		}
		if m.Direction == entity.DirectionOut {
			out++
		} else {
			in++
		}
	}
	assert.Equal(t, 1, out)
	assert.Equal(t, 1, in)

	_, err = f.ledger.ApplyMovement(ctx, 1, src.ID, dto.MovementRequest{Kind: "TRASLADO", Quantity: 5, TargetWarehouseID: &target})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	missing := int64(99)
	_, err = f.ledger.ApplyMovement(ctx, 1, src.ID, dto.MovementRequest{Kind: "TRASLADO", Quantity: 1, TargetWarehouseID: &missing})
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestLedger_DebitInTxNuncaDejaNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.init(t, 1, 1, 3, 0)
	key := entity.StockKey{ProductID: 1, WarehouseID: 1}

	err := f.store.TxRunner().Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if _, err := f.ledger.DebitInTx(ctx, uow, key, 2, "venta", 1); err != nil {
			return err
		}
		_, err := f.ledger.DebitInTx(ctx, uow, key, 2, "venta", 1)
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := f.ledger.Query(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].Quantity, "la transacción fallida no deja rastro")
}

func TestLedger_ListLowStockYHistorial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	low := f.init(t, 1, 1, 2, 5)
	f.init(t, 2, 1, 50, 5)

	list, err := f.ledger.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ID)
	assert.True(t, list[0].LowStock)

	_, err = f.ledger.ApplyMovement(ctx, 1, low.ID, dto.MovementRequest{Kind: "ENTRY", Quantity: 10})
	require.NoError(t, err)
	hist, err := f.ledger.ProductHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "ENTRY", hist[0].Kind)
	assert.GreaterOrEqual(t, hist[0].ID, hist[1].ID, "más reciente primero")
}
