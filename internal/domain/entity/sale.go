package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de punto de venta; descuenta stock por cada línea.
type Sale struct {
	ID            int64
	SaleNumber    string
	SaleDate      time.Time
	CustomerID    *int64
	OperatorID    int64
	SaleType      SaleType
	PaymentMethod PaymentMethod
	Status        SaleStatus
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Taxes         decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	ModifiedAt    time.Time

	CustomerName string
	OperatorName string
	Lines        []*SaleLine
}

// SaleLine detalle de venta.
type SaleLine struct {
	ID           int64
	SaleID       int64
	ProductID    int64
	WarehouseID  int64
	Quantity     int64
	UnitPrice    decimal.Decimal
	UnitDiscount decimal.Decimal
	Subtotal     decimal.Decimal // Quantity * UnitPrice
	Total        decimal.Decimal // Subtotal - Quantity * UnitDiscount

	ProductName string
}

// Key posición de stock afectada por la línea.
func (l *SaleLine) Key() StockKey {
	return StockKey{ProductID: l.ProductID, WarehouseID: l.WarehouseID}
}

// InitialStatus CREDIT queda PENDING; el resto COMPLETED.
func InitialStatus(t SaleType) SaleStatus {
	if t == SaleCredit {
		return SalePending
	}
	return SaleCompleted
}
