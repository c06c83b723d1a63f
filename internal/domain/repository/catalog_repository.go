package repository

import (
	"context"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// CatalogRepository lectura del catálogo externo. (nil, nil) si no existe.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	GetWarehouse(ctx context.Context, id int64) (*entity.Warehouse, error)
	GetCustomer(ctx context.Context, id int64) (*entity.Customer, error)
	GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
}
