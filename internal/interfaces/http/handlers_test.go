package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/auth"
	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/orders"
	"github.com/jhoicas/inventario-ventas/internal/application/reports"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/inventario-ventas/internal/interfaces/http"
)

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

// newAPI arma la aplicación completa sobre el store en memoria con el catálogo de demostración
// y un administrador admin/admin12345.
func newAPI(t *testing.T, loginLimit string) *apiClient {
	t.Helper()
	store := memory.NewStore()
	seed.Demo().ApplyMemory(store)

	reg := metrics.New()
	ledger := inventory.NewLedger(store.TxRunner(), store.Reader(), nil, reg)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 30, Issuer: testIssuer})
	created, err := authUC.Bootstrap(context.Background(), "admin", "admin12345")
	require.NoError(t, err)
	require.True(t, created)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	require.NoError(t, apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "inventario-ventas-test",
		Ledger:      ledger,
		Monitor:     inventory.NewLowStockMonitor(ledger, nil),
		Adjustments: inventory.NewAdjustmentUseCase(ledger),
		Orders:      orders.NewUseCase(store.TxRunner(), store.Reader(), decimal.RequireFromString("0.16")),
		Sales:       sales.NewUseCase(store.TxRunner(), store.Reader(), ledger, decimal.RequireFromString("0.16"), reg),
		Reports:     reports.NewService(store.Reader(), pdf.NewMarotoReportRenderer("test")),
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
		LoginLimit:  loginLimit,
		Metrics:     reg,
	}))
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path string, body interface{}) (*http.Response, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, raw
}

func (a *apiClient) login(username, password string) {
	a.t.Helper()
	resp, raw := a.do(http.MethodPost, "/autenticacion/login", dto.LoginRequest{Username: username, Password: password})
	require.Equal(a.t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(raw, &out))
	a.token = out.AccessToken
}

func (a *apiClient) initialize(productID, warehouseID, qty int64) dto.StockPositionResponse {
	a.t.Helper()
	resp, raw := a.do(http.MethodPost, "/inventario/inicializar", dto.InitializeStockRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: qty, MinStock: 2, SalePrice: decimal.NewFromInt(30),
	})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode, string(raw))
	var pos dto.StockPositionResponse
	require.NoError(a.t, json.Unmarshal(raw, &pos))
	return pos
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e
}

func TestAPI_Health(t *testing.T) {
	api := newAPI(t, "")
	resp, raw := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "inventario-ventas-test")
}

func TestAPI_EscrituraSinToken_Retorna401(t *testing.T) {
	api := newAPI(t, "")
	resp, _ := api.do(http.MethodPost, "/inventario/inicializar", dto.InitializeStockRequest{ProductID: 1, WarehouseID: 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LoginCredencialesInvalidas_Retorna401(t *testing.T) {
	api := newAPI(t, "")
	resp, raw := api.do(http.MethodPost, "/autenticacion/login", dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, raw).Code)
}

func TestAPI_InicializarDuplicado_Retorna409(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	api.initialize(1, 1, 10)

	resp, raw := api.do(http.MethodPost, "/inventario/inicializar", dto.InitializeStockRequest{ProductID: 1, WarehouseID: 1, Quantity: 3})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, raw).Code)
}

func TestAPI_ParametrosInvalidos_Retorna400(t *testing.T) {
	api := newAPI(t, "")

	resp, raw := api.do(http.MethodGet, "/inventario/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, raw).Code)

	resp, _ = api.do(http.MethodGet, "/ventas?fecha_inicio=2024-13-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, "/ventas/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ValidacionDeBody_DetallaCampos(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")

	resp, raw := api.do(http.MethodPost, "/ventas", dto.SaleRequest{
		SaleType: "CONTADO", PaymentMethod: "EFECTIVO",
		Items: []dto.SaleItemRequest{{ProductID: 1, WarehouseID: 1, Quantity: 0}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, string(raw), "Quantity")
}

func TestAPI_VentaStockInsuficiente_DetalleDisponible(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	pos := api.initialize(1, 1, 3)

	resp, raw := api.do(http.MethodPost, "/ventas", dto.SaleRequest{
		SaleType: "CONTADO", PaymentMethod: "EFECTIVO",
		Items: []dto.SaleItemRequest{{ProductID: 1, WarehouseID: 1, Quantity: 5}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var e struct {
		Code    string                       `json:"code"`
		Details dto.InsufficientStockDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, int64(3), e.Details.Available)
	assert.Equal(t, int64(5), e.Details.Requested)

	// sin efectos
	resp, raw = api.do(http.MethodGet, fmt.Sprintf("/inventario/%d", pos.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var after dto.StockPositionResponse
	require.NoError(t, json.Unmarshal(raw, &after))
	assert.Equal(t, int64(3), after.Quantity)
}

func TestAPI_VentaCancelacionYDobleCancelacion(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	pos := api.initialize(2, 1, 10)

	resp, raw := api.do(http.MethodPost, "/ventas", dto.SaleRequest{
		SaleType: "CONTADO", PaymentMethod: "TARJETA",
		Items: []dto.SaleItemRequest{{ProductID: 2, WarehouseID: 1, Quantity: 4}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var sale dto.SaleResponse
	require.NoError(t, json.Unmarshal(raw, &sale))
	assert.Equal(t, "COMPLETED", sale.Status)
	assert.True(t, decimal.NewFromInt(120).Equal(sale.Subtotal), sale.Subtotal.String())

	_, raw = api.do(http.MethodGet, fmt.Sprintf("/inventario/%d", pos.ID), nil)
	var mid dto.StockPositionResponse
	require.NoError(t, json.Unmarshal(raw, &mid))
	assert.Equal(t, int64(6), mid.Quantity)

	resp, _ = api.do(http.MethodPut, fmt.Sprintf("/ventas/%d/cancelar", sale.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = api.do(http.MethodPut, fmt.Sprintf("/ventas/%d/cancelar", sale.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, raw).Code)

	_, raw = api.do(http.MethodGet, fmt.Sprintf("/inventario/%d", pos.ID), nil)
	var end dto.StockPositionResponse
	require.NoError(t, json.Unmarshal(raw, &end))
	assert.Equal(t, int64(10), end.Quantity)

	resp, raw = api.do(http.MethodGet, "/movimientos?producto_id=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &movs))
	require.Len(t, movs, 3) // inicial, venta y cancelación
	assert.Equal(t, "IN", movs[0].Direction)
	assert.Equal(t, "OUT", movs[1].Direction)
}

func TestAPI_MovimientoYAjuste(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	pos := api.initialize(3, 1, 5)

	resp, raw := api.do(http.MethodPost, "/movimientos", dto.MovementRequest{
		StockPositionID: pos.ID, Kind: "ENTRADA", Quantity: 7, Reason: "compra",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	prev := int64(5)
	resp, raw = api.do(http.MethodPost, "/ajustes", dto.AdjustmentRequest{
		StockPositionID: pos.ID, Kind: "CORRECCION", PreviousQuantity: &prev, NewQuantity: 1, Reason: "conteo",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))

	prev = 12
	resp, raw = api.do(http.MethodPost, "/ajustes", dto.AdjustmentRequest{
		StockPositionID: pos.ID, Kind: "CORRECCION", PreviousQuantity: &prev, NewQuantity: 1, Reason: "conteo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = api.do(http.MethodGet, "/inventario/bajo-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var low []dto.StockPositionResponse
	require.NoError(t, json.Unmarshal(raw, &low))
	require.Len(t, low, 1)
	assert.Equal(t, pos.ID, low[0].ID)

	resp, raw = api.do(http.MethodGet, "/ajustes/producto/3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adjs []dto.AdjustmentResponse
	require.NoError(t, json.Unmarshal(raw, &adjs))
	require.Len(t, adjs, 1)
	assert.Equal(t, int64(12), adjs[0].PreviousQuantity)
}

func TestAPI_AjusteSinCantidadAnteriorSobrescribe(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	pos := api.initialize(4, 1, 9)

	resp, raw := api.do(http.MethodPost, "/ajustes", dto.AdjustmentRequest{
		StockPositionID: pos.ID, Kind: "CORRECCION", NewQuantity: 3, Reason: "conteo físico",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var adj dto.AdjustmentResponse
	require.NoError(t, json.Unmarshal(raw, &adj))
	assert.Equal(t, int64(9), adj.PreviousQuantity)
	assert.Equal(t, int64(3), adj.NewQuantity)

	stale := int64(9)
	resp, raw = api.do(http.MethodPost, "/ajustes", dto.AdjustmentRequest{
		StockPositionID: pos.ID, Kind: "CORRECCION", PreviousQuantity: &stale, NewQuantity: 0, Reason: "conteo físico",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))
	assert.Equal(t, "CONFLICT", decodeError(t, raw).Code)

	resp, raw = api.do(http.MethodGet, fmt.Sprintf("/inventario/%d", pos.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.StockPositionResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, int64(3), got.Quantity)
}

func TestAPI_PedidoCRUD(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	supplier := int64(1)

	resp, raw := api.do(http.MethodPost, "/pedidos", dto.OrderRequest{
		OrderType: "ENTRADA", SupplierID: &supplier,
		Lines: []dto.OrderLineRequest{{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(50)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(raw, &order))
	assert.True(t, decimal.RequireFromString("116").Equal(order.Total), order.Total.String())

	resp, _ = api.do(http.MethodDelete, fmt.Sprintf("/pedidos/%d", order.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, fmt.Sprintf("/pedidos/%d", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_RegistrarSoloAdministrador(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")

	resp, raw := api.do(http.MethodPost, "/autenticacion/registrar", dto.RegisterRequest{
		Username: "tecnico", FullName: "Técnico Uno", Password: "tecnico123", Role: "TECNICO_EJECUTIVO",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	api.login("tecnico", "tecnico123")
	resp, _ = api.do(http.MethodPost, "/autenticacion/registrar", dto.RegisterRequest{
		Username: "otro", FullName: "Otro", Password: "otro12345", Role: "ADMINISTRADOR",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = api.do(http.MethodGet, "/autenticacion/usuarios/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "tecnico", me.Username)
}

func TestAPI_ReportePDF(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	api.initialize(1, 1, 4)

	resp, raw := api.do(http.MethodPost, "/reportes/generar", dto.ReportRequest{Type: "INVENTARIO", Format: "PDF"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_inventario_")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = api.do(http.MethodPost, "/reportes/generar", dto.ReportRequest{Type: "INVENTARIO", Format: "EXCEL"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_LoginConLimiteDePeticiones(t *testing.T) {
	api := newAPI(t, "2-M")
	body := dto.LoginRequest{Username: "admin", Password: "incorrecta"}

	for i := 0; i < 2; i++ {
		resp, _ := api.do(http.MethodPost, "/autenticacion/login", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, raw := api.do(http.MethodPost, "/autenticacion/login", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, raw).Code)
}

func TestAPI_MetricasDeVentas(t *testing.T) {
	api := newAPI(t, "")
	api.login("admin", "admin12345")
	api.initialize(5, 2, 1)

	resp, _ := api.do(http.MethodPost, "/ventas", dto.SaleRequest{
		SaleType: "CONTADO", PaymentMethod: "EFECTIVO",
		Items: []dto.SaleItemRequest{{ProductID: 5, WarehouseID: 2, Quantity: 2}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw := api.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `inventario_sales_total{result="rejected"} 1`)
}
