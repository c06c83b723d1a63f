package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitializeStockRequest body para POST /inventario/inicializar.
type InitializeStockRequest struct {
	ProductID     int64           `json:"producto_id" validate:"required,gt=0"`
	WarehouseID   int64           `json:"almacen_id" validate:"required,gt=0"`
	Quantity      int64           `json:"cantidad" validate:"gte=0"`
	MinStock      int64           `json:"stock_minimo" validate:"gte=0"`
	MaxStock      int64           `json:"stock_maximo" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"precio_compra" validate:"gte=0"`
	SalePrice     decimal.Decimal `json:"precio_venta" validate:"gte=0"`
	Location      string          `json:"ubicacion" validate:"max=200"`
}

// MovementRequest body para POST /inventario/{id}/movimiento y POST /movimientos.
// StockPositionID solo se usa en /movimientos; en la otra ruta viene en el path.
type MovementRequest struct {
	StockPositionID   int64  `json:"producto_inventario_id,omitempty"`
	Kind              string `json:"tipo" validate:"required"`
	Quantity          int64  `json:"cantidad" validate:"gt=0"`
	Reason            string `json:"motivo" validate:"max=500"`
	TargetWarehouseID *int64 `json:"almacen_destino_id,omitempty"`
}

// StockPositionResponse salida de una posición de stock con nombres resueltos.
type StockPositionResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"producto_id"`
	ProductName   string          `json:"producto_nombre"`
	WarehouseID   int64           `json:"almacen_id"`
	WarehouseName string          `json:"almacen_nombre"`
	Quantity      int64           `json:"cantidad"`
	MinStock      int64           `json:"stock_minimo"`
	MaxStock      int64           `json:"stock_maximo"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	Location      string          `json:"ubicacion"`
	LowStock      bool            `json:"bajo_stock"`
	UpdatedAt     time.Time       `json:"fecha_actualizacion"`
}

// MovementResponse salida de un registro de movimiento.
type MovementResponse struct {
	ID              int64     `json:"id"`
	StockPositionID int64     `json:"producto_inventario_id"`
	ProductID       int64     `json:"producto_id"`
	ProductName     string    `json:"producto_nombre"`
	WarehouseID     int64     `json:"almacen_id"`
	WarehouseName   string    `json:"almacen_nombre"`
	Kind            string    `json:"tipo"`
	Direction       string    `json:"sentido"`
	Quantity        int64     `json:"cantidad"`
	Reason          string    `json:"motivo"`
	CreatedBy       *int64    `json:"usuario_id,omitempty"`
	CreatedAt       time.Time `json:"fecha"`
}

// MovementListFilter filtros de GET /movimientos.
type MovementListFilter struct {
	ProductID *int64
	Range     DateRange
	Page      PageRequest
}

// AdjustmentRequest body para POST /ajustes.
// PreviousQuantity opcional: si viene y no coincide con la actual, el ajuste se rechaza.
type AdjustmentRequest struct {
	StockPositionID  int64  `json:"producto_inventario_id" validate:"required,gt=0"`
	Kind             string `json:"tipo" validate:"required"`
	PreviousQuantity *int64 `json:"cantidad_anterior,omitempty"`
	NewQuantity      int64  `json:"cantidad_nueva" validate:"gte=0"`
	Reason           string `json:"motivo" validate:"required,max=500"`
}

// AdjustmentResponse salida de un ajuste.
type AdjustmentResponse struct {
	ID               int64     `json:"id"`
	StockPositionID  int64     `json:"producto_inventario_id"`
	ProductID        int64     `json:"producto_id"`
	ProductName      string    `json:"producto_nombre"`
	Kind             string    `json:"tipo"`
	PreviousQuantity int64     `json:"cantidad_anterior"`
	NewQuantity      int64     `json:"cantidad_nueva"`
	Reason           string    `json:"motivo"`
	CreatedBy        *int64    `json:"usuario_id,omitempty"`
	CreatedAt        time.Time `json:"fecha"`
}

// ReplenishmentSuggestion posición en o bajo el mínimo con la cantidad sugerida de reposición.
type ReplenishmentSuggestion struct {
	StockPositionID   int64  `json:"producto_inventario_id"`
	ProductID         int64  `json:"producto_id"`
	ProductName       string `json:"producto_nombre"`
	WarehouseName     string `json:"almacen_nombre"`
	CurrentStock      int64  `json:"cantidad"`
	MinStock          int64  `json:"stock_minimo"`
	SuggestedOrderQty int64  `json:"cantidad_sugerida"`
	Priority          int    `json:"prioridad"` // 1 = más urgente
}
