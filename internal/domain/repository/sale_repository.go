package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// SaleRepository cabeceras y detalles de ventas.
type SaleRepository interface {
	// Create falla con domain.ErrDuplicateSaleNumber si el número ya existe.
	Create(ctx context.Context, s *entity.Sale) error
	CreateLine(ctx context.Context, l *entity.SaleLine) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la cabecera; serializa cancelaciones concurrentes.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	ListLines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error)
	UpdateStatus(ctx context.Context, id int64, status entity.SaleStatus, modifiedAt time.Time) error
	UpdateType(ctx context.Context, id int64, saleType entity.SaleType, modifiedAt time.Time) error
	List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error)
}
