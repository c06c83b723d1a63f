package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// OrderRepository cabeceras y detalles de pedidos.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	// Update retorna domain.ErrOrderNotFound si ninguna fila coincide.
	Update(ctx context.Context, o *entity.Order) error
	// Delete retorna domain.ErrOrderNotFound si ninguna fila coincide.
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.Order, error)
	CreateLine(ctx context.Context, l *entity.OrderLine) error
	DeleteLines(ctx context.Context, orderID int64) error
	ListLines(ctx context.Context, orderID int64) ([]*entity.OrderLine, error)
}
