package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/orders"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/memory"
)

func newUseCase(t *testing.T) (*orders.UseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	s.AddProduct(entity.Product{ID: 1, Name: "Cemento"})
	s.AddProduct(entity.Product{ID: 2, Name: "Arena"})
	s.AddCustomer(entity.Customer{ID: 1, Name: "Constructora Andes"})
	s.AddSupplier(entity.Supplier{ID: 1, Name: "Materiales del Sur"})
	return orders.NewUseCase(s.TxRunner(), s.Reader(), decimal.RequireFromString("0.16")), s
}

func ptr(v int64) *int64 { return &v }

func TestOrders_CreateCalculaTotalesYResuelveNombres(t *testing.T) {
	uc, _ := newUseCase(t)

	out, err := uc.Create(context.Background(), dto.OrderRequest{
		OrderType:  "ENTRADA",
		SupplierID: ptr(1),
		CustomerID: ptr(1),
		Lines: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 10, UnitPrice: decimal.NewFromInt(20), Discount: decimal.NewFromInt(10)},
			{ProductID: 2, Quantity: 5, UnitPrice: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ENTRY", out.OrderType)
	assert.Equal(t, "PENDING", out.Status)
	assert.Nil(t, out.CustomerID, "la contraparte que no aplica se descarta")
	assert.Equal(t, "Materiales del Sur", out.SupplierName)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(200)), out.Subtotal.String())
	assert.True(t, out.Taxes.Equal(decimal.NewFromInt(32)), out.Taxes.String())
	assert.True(t, out.Total.Equal(decimal.NewFromInt(232)), out.Total.String())
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "Cemento", out.Lines[0].ProductName)
	assert.True(t, out.Lines[0].Total.Equal(decimal.NewFromInt(190)))
}

func TestOrders_CreateValidaciones(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()
	line := []dto.OrderLineRequest{{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}}

	tests := []struct {
		name string
		in   dto.OrderRequest
		want error
	}{
		{"salida sin cliente", dto.OrderRequest{OrderType: "EXIT", Lines: line}, domain.ErrInvalidInput},
		{"sin detalles", dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1)}, domain.ErrEmptyOrder},
		{"tipo desconocido", dto.OrderRequest{OrderType: "REGALO", CustomerID: ptr(1), Lines: line}, domain.ErrInvalidEnum},
		{"descuento mayor que el bruto", dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(5), Discount: decimal.NewFromInt(6)},
		}}, domain.ErrInvalidInput},
		{"producto inexistente", dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 1}, {ProductID: 77, Quantity: 1},
		}}, domain.ErrProductNotFound},
		{"cliente inexistente", dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(9), Lines: line}, domain.ErrCustomerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := s.Reader().Orders().List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list, "ningún intento fallido deja cabeceras")
}

func TestOrders_UpdateReemplazaDetalles(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
		{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
	}})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.OrderRequest{OrderType: "EXIT", Status: "EN_PROCESO", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
		{ProductID: 2, Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
	}})
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", updated.Status)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(3), updated.Lines[0].Quantity)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("34.8")), updated.Total.String())

	_, err = uc.Update(ctx, 404, dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{{ProductID: 1, Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrders_UpdateFallidoNoTocaElPedido(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
	}})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
		{ProductID: 99, Quantity: 1},
	}})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(2), got.Lines[0].Quantity)
}

func TestOrders_Delete(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
	}})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrOrderNotFound)

	lines, err := s.Reader().Orders().ListLines(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestOrders_NoMuevenInventario(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.OrderRequest{OrderType: "EXIT", CustomerID: ptr(1), Lines: []dto.OrderLineRequest{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
	}})
	require.NoError(t, err)

	movs, err := s.Reader().Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}
