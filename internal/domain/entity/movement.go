package entity

import "time"

// MovementRecord registro inmutable de un cambio de cantidad en una StockPosition.
// Quantity siempre positiva; Kind y Direction indican el sentido.
type MovementRecord struct {
	ID              int64
	StockPositionID int64
	Kind            MovementKind
	Direction       MovementDirection
	Quantity        int64
	Reason          string
	CreatedBy       *int64
	CreatedAt       time.Time

	ProductID     int64
	WarehouseID   int64
	ProductName   string
	WarehouseName string
}

// AdjustmentRecord registro inmutable de una corrección absoluta de cantidad.
type AdjustmentRecord struct {
	ID               int64
	StockPositionID  int64
	Kind             AdjustmentKind
	PreviousQuantity int64
	NewQuantity      int64
	Reason           string
	CreatedBy        *int64
	CreatedAt        time.Time

	ProductID   int64
	ProductName string
}
