package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo cabeceras y detalles de pedidos sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT o.id, o.order_type, o.customer_id, o.supplier_id, o.status, o.subtotal, o.taxes, o.total, o.notes,
	       o.created_at, o.updated_at, COALESCE(c.name, ''), COALESCE(s.name, '')
	FROM orders o
	LEFT JOIN customers c ON c.id = o.customer_id
	LEFT JOIN suppliers s ON s.id = o.supplier_id`

func scanOrder(sc scanner) (*entity.Order, error) {
	var o entity.Order
	var orderType, status string
	err := sc.Scan(
		&o.ID, &orderType, &o.CustomerID, &o.SupplierID, &status, &o.Subtotal, &o.Taxes, &o.Total, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt, &o.CustomerName, &o.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	o.OrderType, o.Status = entity.OrderType(orderType), entity.OrderStatus(status)
	return &o, nil
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (order_type, customer_id, supplier_id, status, subtotal, taxes, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		string(o.OrderType), o.CustomerID, o.SupplierID, string(o.Status),
		o.Subtotal, o.Taxes, o.Total, o.Notes, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET order_type = $2, customer_id = $3, supplier_id = $4, status = $5,
			subtotal = $6, taxes = $7, total = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, string(o.OrderType), o.CustomerID, o.SupplierID, string(o.Status),
		o.Subtotal, o.Taxes, o.Total, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// List pedidos en el rango [from, to] por fecha de creación, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Order, error) {
	query := orderSelect + `
		WHERE ($1::timestamptz IS NULL OR o.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR o.created_at <= $2)
		ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (order_id, product_id, quantity, unit_price, discount, subtotal, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.OrderID, l.ProductID, l.Quantity, l.UnitPrice, l.Discount, l.Subtotal, l.Total,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

func (r *OrderRepo) DeleteLines(ctx context.Context, orderID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	return nil
}

func (r *OrderRepo) ListLines(ctx context.Context, orderID int64) ([]*entity.OrderLine, error) {
	query := `
		SELECT l.id, l.order_id, l.product_id, l.quantity, l.unit_price, l.discount, l.subtotal, l.total,
		       COALESCE(p.name, '')
		FROM order_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Discount, &l.Subtotal, &l.Total,
			&l.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
