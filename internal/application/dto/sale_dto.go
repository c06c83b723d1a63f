package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest body para POST /ventas. El operador sale del token, no del body.
type SaleRequest struct {
	CustomerID    *int64            `json:"cliente_id,omitempty"`
	SaleType      string            `json:"tipo_venta" validate:"required"`
	PaymentMethod string            `json:"metodo_pago" validate:"required"`
	Notes         string            `json:"notas" validate:"max=1000"`
	Items         []SaleItemRequest `json:"items" validate:"dive"`
}

// SaleItemRequest línea del request de venta. UnitPrice 0 = precio de venta del inventario.
type SaleItemRequest struct {
	ProductID    int64           `json:"producto_id" validate:"required,gt=0"`
	WarehouseID  int64           `json:"almacen_id" validate:"required,gt=0"`
	Quantity     int64           `json:"cantidad" validate:"gt=0"`
	UnitPrice    decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
	UnitDiscount decimal.Decimal `json:"descuento_unitario" validate:"gte=0"`
}

// UpdateSaleTypeRequest body para PUT /ventas/{id}/actualizar.
type UpdateSaleTypeRequest struct {
	SaleType string `json:"tipo_venta" validate:"required"`
}

// SaleResponse salida de una venta. Lines se omite en listados.
type SaleResponse struct {
	ID            int64              `json:"id"`
	SaleNumber    string             `json:"numero_venta"`
	SaleDate      time.Time          `json:"fecha_venta"`
	CustomerID    *int64             `json:"cliente_id"`
	CustomerName  string             `json:"cliente_nombre,omitempty"`
	OperatorID    int64              `json:"usuario_id"`
	OperatorName  string             `json:"usuario_nombre,omitempty"`
	SaleType      string             `json:"tipo_venta"`
	PaymentMethod string             `json:"metodo_pago"`
	Status        string             `json:"estado"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"descuento"`
	Taxes         decimal.Decimal    `json:"impuestos"`
	Total         decimal.Decimal    `json:"total"`
	Notes         string             `json:"notas"`
	ModifiedAt    time.Time          `json:"fecha_modificacion"`
	Lines         []SaleLineResponse `json:"detalles,omitempty"`
}

// SaleLineResponse detalle de venta en la respuesta.
type SaleLineResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"producto_id"`
	ProductName  string          `json:"producto_nombre"`
	WarehouseID  int64           `json:"almacen_id"`
	Quantity     int64           `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	UnitDiscount decimal.Decimal `json:"descuento_unitario"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
}
