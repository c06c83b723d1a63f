package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido de entrada (proveedor) o salida (cliente). No mueve stock.
type Order struct {
	ID         int64
	OrderType  OrderType
	CustomerID *int64
	SupplierID *int64
	Status     OrderStatus
	Subtotal   decimal.Decimal
	Taxes      decimal.Decimal
	Total      decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	CustomerName string
	SupplierName string
	Lines        []*OrderLine
}

// OrderLine detalle de pedido.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
	Total     decimal.Decimal // Subtotal - Discount

	ProductName string
}
