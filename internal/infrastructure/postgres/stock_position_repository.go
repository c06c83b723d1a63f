package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.StockPositionRepository = (*StockPositionRepo)(nil)

// StockPositionRepo implementación de StockPositionRepository sobre PostgreSQL (usable con pool o tx).
type StockPositionRepo struct {
	q Querier
}

// NewStockPositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockPositionRepository(q Querier) *StockPositionRepo {
	return &StockPositionRepo{q: q}
}

const positionSelect = `
	SELECT sp.id, sp.product_id, sp.warehouse_id, sp.quantity, sp.min_stock, sp.max_stock,
	       sp.purchase_price, sp.sale_price, sp.location, sp.created_at, sp.updated_at,
	       COALESCE(p.name, ''), COALESCE(w.name, '')
	FROM stock_positions sp
	LEFT JOIN products p ON p.id = sp.product_id
	LEFT JOIN warehouses w ON w.id = sp.warehouse_id`

func scanPosition(s scanner) (*entity.StockPosition, error) {
	var p entity.StockPosition
	err := s.Scan(
		&p.ID, &p.ProductID, &p.WarehouseID, &p.Quantity, &p.MinStock, &p.MaxStock,
		&p.PurchasePrice, &p.SalePrice, &p.Location, &p.CreatedAt, &p.UpdatedAt,
		&p.ProductName, &p.WarehouseName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta la posición. El UNIQUE (product_id, warehouse_id) se traduce a ErrDuplicatePosition.
func (r *StockPositionRepo) Create(ctx context.Context, p *entity.StockPosition) error {
	query := `
		INSERT INTO stock_positions
			(product_id, warehouse_id, quantity, min_stock, max_stock, purchase_price, sale_price, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.ProductID, p.WarehouseID, p.Quantity, p.MinStock, p.MaxStock,
		p.PurchasePrice, p.SalePrice, p.Location, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePosition
		}
		return fmt.Errorf("insert stock position: %w", err)
	}
	return nil
}

func (r *StockPositionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockPosition, error) {
	p, err := scanPosition(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock position: %w", err)
	}
	return p, nil
}

// GetByID obtiene la posición por id. (nil, nil) si no existe.
func (r *StockPositionRepo) GetByID(ctx context.Context, id int64) (*entity.StockPosition, error) {
	return r.getOne(ctx, positionSelect+` WHERE sp.id = $1`, id)
}

// GetByIDForUpdate obtiene la posición y bloquea la fila (SELECT FOR UPDATE).
func (r *StockPositionRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.StockPosition, error) {
	return r.getOne(ctx, positionSelect+` WHERE sp.id = $1 FOR UPDATE OF sp`, id)
}

// GetByKey obtiene la posición de un producto en un almacén.
func (r *StockPositionRepo) GetByKey(ctx context.Context, key entity.StockKey) (*entity.StockPosition, error) {
	return r.getOne(ctx, positionSelect+` WHERE sp.product_id = $1 AND sp.warehouse_id = $2`, key.ProductID, key.WarehouseID)
}

// GetByKeyForUpdate igual que GetByKey pero bloquea la fila.
func (r *StockPositionRepo) GetByKeyForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockPosition, error) {
	return r.getOne(ctx, positionSelect+` WHERE sp.product_id = $1 AND sp.warehouse_id = $2 FOR UPDATE OF sp`, key.ProductID, key.WarehouseID)
}

// UpdateQuantity escribe la nueva cantidad. El CHECK (quantity >= 0) es la última defensa.
func (r *StockPositionRepo) UpdateQuantity(ctx context.Context, id, quantity int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_positions SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Invalid("cantidad", "no puede quedar negativa")
		}
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}

// List posiciones ordenadas por nombre de producto y almacén.
func (r *StockPositionRepo) List(ctx context.Context, f repository.StockPositionFilter) ([]*entity.StockPosition, error) {
	query := positionSelect + `
		WHERE ($1::bigint IS NULL OR sp.product_id = $1)
		  AND ($2::bigint IS NULL OR sp.warehouse_id = $2)
		ORDER BY p.name, w.name, sp.id`
	return r.list(ctx, query, f.ProductID, f.WarehouseID)
}

// ListLowStock posiciones con cantidad <= stock mínimo.
func (r *StockPositionRepo) ListLowStock(ctx context.Context) ([]*entity.StockPosition, error) {
	return r.list(ctx, positionSelect+` WHERE sp.quantity <= sp.min_stock ORDER BY p.name, w.name, sp.id`)
}

func (r *StockPositionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockPosition, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock positions: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockPosition
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock position: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
