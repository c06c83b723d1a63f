package repository

import (
	"context"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// StockPositionFilter filtros opcionales de consulta.
type StockPositionFilter struct {
	ProductID   *int64
	WarehouseID *int64
}

// StockPositionRepository puerto de persistencia de posiciones de stock.
// Los métodos ForUpdate bloquean la fila hasta el fin de la transacción.
// Las lecturas devuelven (nil, nil) si no existe la fila.
type StockPositionRepository interface {
	// Create falla con domain.ErrDuplicatePosition si el par ya existe.
	Create(ctx context.Context, p *entity.StockPosition) error
	GetByID(ctx context.Context, id int64) (*entity.StockPosition, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.StockPosition, error)
	GetByKey(ctx context.Context, key entity.StockKey) (*entity.StockPosition, error)
	GetByKeyForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockPosition, error)
	UpdateQuantity(ctx context.Context, id, quantity int64) error
	List(ctx context.Context, f StockPositionFilter) ([]*entity.StockPosition, error)
	ListLowStock(ctx context.Context) ([]*entity.StockPosition, error)
}
