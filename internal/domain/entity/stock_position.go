package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPosition cantidad de un producto en un almacén. Única por (ProductID, WarehouseID).
type StockPosition struct {
	ID            int64
	ProductID     int64
	WarehouseID   int64
	Quantity      int64 // nunca negativa después de commit
	MinStock      int64
	MaxStock      int64
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Location      string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Resueltos desde el catálogo en lecturas.
	ProductName   string
	WarehouseName string
}

// IsLow indica si la cantidad está en o por debajo del mínimo.
func (p *StockPosition) IsLow() bool {
	return p.Quantity <= p.MinStock
}

// StockKey identifica una posición por producto y almacén.
type StockKey struct {
	ProductID   int64
	WarehouseID int64
}

// Less orden total usado para bloquear filas siempre en el mismo orden.
func (k StockKey) Less(o StockKey) bool {
	if k.ProductID != o.ProductID {
		return k.ProductID < o.ProductID
	}
	return k.WarehouseID < o.WarehouseID
}
