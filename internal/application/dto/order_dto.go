package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest body para POST /pedidos y PUT /pedidos/{id}.
// Los totales los calcula el servidor; los enviados por el cliente se ignoran.
type OrderRequest struct {
	OrderType  string             `json:"tipo_pedido" validate:"required"`
	Status     string             `json:"estado"`
	CustomerID *int64             `json:"cliente_id,omitempty"`
	SupplierID *int64             `json:"proveedor_id,omitempty"`
	Notes      string             `json:"notas" validate:"max=1000"`
	Lines      []OrderLineRequest `json:"detalles" validate:"dive"`
}

// OrderLineRequest detalle de pedido en el request.
type OrderLineRequest struct {
	ProductID int64           `json:"producto_id" validate:"required,gt=0"`
	Quantity  int64           `json:"cantidad" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
	Discount  decimal.Decimal `json:"descuento" validate:"gte=0"`
}

// OrderResponse salida de un pedido con nombres y detalles.
type OrderResponse struct {
	ID           int64               `json:"id"`
	OrderType    string              `json:"tipo_pedido"`
	Status       string              `json:"estado"`
	CustomerID   *int64              `json:"cliente_id"`
	CustomerName string              `json:"cliente_nombre,omitempty"`
	SupplierID   *int64              `json:"proveedor_id"`
	SupplierName string              `json:"proveedor_nombre,omitempty"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Taxes        decimal.Decimal     `json:"impuestos"`
	Total        decimal.Decimal     `json:"total"`
	Notes        string              `json:"notas"`
	CreatedAt    time.Time           `json:"fecha"`
	UpdatedAt    time.Time           `json:"fecha_actualizacion"`
	Lines        []OrderLineResponse `json:"detalles"`
}

// OrderLineResponse detalle de pedido en la respuesta.
type OrderLineResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"producto_id"`
	ProductName string          `json:"producto_nombre"`
	Quantity    int64           `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Discount    decimal.Decimal `json:"descuento"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
}
