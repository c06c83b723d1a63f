package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura de productos, almacenes, clientes, proveedores y usuarios.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// scanOne traduce ErrNoRows a (false, nil).
func scanOne(row pgx.Row, what string, dest ...any) (bool, error) {
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", what, err)
	}
	return true, nil
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	ok, err := scanOne(r.q.QueryRow(ctx, `SELECT id, COALESCE(code, ''), name, price FROM products WHERE id = $1`, id),
		"product", &p.ID, &p.Code, &p.Name, &p.Price)
	if !ok {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepo) GetWarehouse(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var w entity.Warehouse
	ok, err := scanOne(r.q.QueryRow(ctx, `SELECT id, name, location FROM warehouses WHERE id = $1`, id),
		"warehouse", &w.ID, &w.Name, &w.Location)
	if !ok {
		return nil, err
	}
	return &w, nil
}

func (r *CatalogRepo) GetCustomer(ctx context.Context, id int64) (*entity.Customer, error) {
	var c entity.Customer
	ok, err := scanOne(r.q.QueryRow(ctx, `SELECT id, name, phone FROM customers WHERE id = $1`, id),
		"customer", &c.ID, &c.Name, &c.Phone)
	if !ok {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepo) GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	ok, err := scanOne(r.q.QueryRow(ctx, `SELECT id, name, phone FROM suppliers WHERE id = $1`, id),
		"supplier", &s.ID, &s.Name, &s.Phone)
	if !ok {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepo) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	return NewUserRepository(r.q).GetByID(ctx, id)
}
