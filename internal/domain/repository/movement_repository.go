package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos. Limit 0 = sin límite.
type MovementFilter struct {
	ProductID *int64
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository registros de movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, m *entity.MovementRecord) error
	List(ctx context.Context, f MovementFilter) ([]*entity.MovementRecord, error)
	ListByPosition(ctx context.Context, stockPositionID int64) ([]*entity.MovementRecord, error)
}

// AdjustmentRepository registros de ajustes (solo inserción y lectura).
type AdjustmentRepository interface {
	Create(ctx context.Context, a *entity.AdjustmentRecord) error
	// List productID nil = todos; orden por fecha descendente.
	List(ctx context.Context, productID *int64) ([]*entity.AdjustmentRecord, error)
}
