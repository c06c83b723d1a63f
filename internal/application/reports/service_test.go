package reports_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/orders"
	"github.com/jhoicas/inventario-ventas/internal/application/reports"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/memory"
)

type captureRenderer struct {
	doc reports.Document
}

func (c *captureRenderer) Render(_ context.Context, doc reports.Document) ([]byte, error) {
	c.doc = doc
	return []byte("%PDF-fake"), nil
}

func newService(t *testing.T) (*reports.Service, *captureRenderer) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	s.AddProduct(entity.Product{ID: 1, Name: "Cable"})
	s.AddProduct(entity.Product{ID: 2, Name: "Enchufe"})
	s.AddWarehouse(entity.Warehouse{ID: 1, Name: "Central"})
	s.AddCustomer(entity.Customer{ID: 1, Name: "Electro SA"})

	ledger := inventory.NewLedger(s.TxRunner(), s.Reader(), nil, nil)
	_, err := ledger.Initialize(ctx, 1, dto.InitializeStockRequest{ProductID: 1, WarehouseID: 1, Quantity: 2, MinStock: 5})
	require.NoError(t, err)

	ord := orders.NewUseCase(s.TxRunner(), s.Reader(), decimal.Zero)
	customer := int64(1)
	_, err = ord.Create(ctx, dto.OrderRequest{OrderType: "SALIDA", CustomerID: &customer, Lines: []dto.OrderLineRequest{
		{ProductID: 1, Quantity: 4, UnitPrice: decimal.NewFromInt(3)},
		{ProductID: 2, Quantity: 9, UnitPrice: decimal.NewFromInt(1)},
	}})
	require.NoError(t, err)

	r := &captureRenderer{}
	return reports.NewService(s.Reader(), r), r
}

func TestReports_General(t *testing.T) {
	svc, r := newService(t)

	file, err := svc.Generate(context.Background(), dto.ReportRequest{Type: "general", Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "reporte_general_"))

	require.Len(t, r.doc.Sections, 2)
	assert.Equal(t, "Posiciones bajo stock", r.doc.Sections[0].Summary[2].Label)
	assert.Equal(t, "1", r.doc.Sections[0].Summary[2].Value)
	top := r.doc.Sections[1].Rows
	require.Len(t, top, 2)
	assert.Equal(t, "Enchufe", top[0][1])
}

func TestReports_VentasEInventario(t *testing.T) {
	svc, r := newService(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, dto.ReportRequest{Type: "VENTAS", Format: "PDF"})
	require.NoError(t, err)
	require.Len(t, r.doc.Sections[0].Rows, 1)
	assert.Equal(t, "Electro SA", r.doc.Sections[0].Rows[0][3])
	assert.Contains(t, r.doc.Sections[0].Rows[0][4], "Cable x4")

	_, err = svc.Generate(ctx, dto.ReportRequest{Type: "INVENTARIO", Format: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "BAJO", r.doc.Sections[0].Rows[0][5])

	_, err = svc.Generate(ctx, dto.ReportRequest{Type: "MOVIMIENTOS", Format: "PDF", StartDate: "2000-01-01", EndDate: "2999-12-31"})
	require.NoError(t, err)
	assert.Len(t, r.doc.Sections[0].Rows, 1)
}

func TestReports_Rechazos(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, dto.ReportRequest{Type: "VENTAS", Format: "EXCEL"})
	assert.ErrorIs(t, err, domain.ErrInvalidReport)

	_, err = svc.Generate(ctx, dto.ReportRequest{Type: "NOMINA", Format: "PDF"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Generate(ctx, dto.ReportRequest{Type: "VENTAS", Format: "PDF", StartDate: "2024-02-10", EndDate: "2024-02-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Generate(ctx, dto.ReportRequest{Type: "VENTAS", Format: "PDF", StartDate: "10/02/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
