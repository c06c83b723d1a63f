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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo cabeceras y detalles de ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT s.id, s.sale_number, s.sale_date, s.customer_id, s.operator_id, s.sale_type, s.payment_method, s.status,
	       s.subtotal, s.discount, s.taxes, s.total, s.notes, s.modified_at,
	       COALESCE(c.name, ''), COALESCE(NULLIF(u.full_name, ''), u.username, '')
	FROM sales s
	LEFT JOIN customers c ON c.id = s.customer_id
	LEFT JOIN users u ON u.id = s.operator_id`

func scanSale(sc scanner) (*entity.Sale, error) {
	var s entity.Sale
	var saleType, payment, status string
	err := sc.Scan(
		&s.ID, &s.SaleNumber, &s.SaleDate, &s.CustomerID, &s.OperatorID, &saleType, &payment, &status,
		&s.Subtotal, &s.Discount, &s.Taxes, &s.Total, &s.Notes, &s.ModifiedAt,
		&s.CustomerName, &s.OperatorName,
	)
	if err != nil {
		return nil, err
	}
	s.SaleType = entity.SaleType(saleType)
	s.PaymentMethod = entity.PaymentMethod(payment)
	s.Status = entity.SaleStatus(status)
	return &s, nil
}

// Create inserta la cabecera. El UNIQUE de sale_number se traduce a ErrDuplicateSaleNumber.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (sale_number, sale_date, customer_id, operator_id, sale_type, payment_method, status,
			subtotal, discount, taxes, total, notes, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.SaleNumber, s.SaleDate, s.CustomerID, s.OperatorID, string(s.SaleType), string(s.PaymentMethod), string(s.Status),
		s.Subtotal, s.Discount, s.Taxes, s.Total, s.Notes, s.ModifiedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSaleNumber
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (sale_id, product_id, warehouse_id, quantity, unit_price, unit_discount, subtotal, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.SaleID, l.ProductID, l.WarehouseID, l.Quantity, l.UnitPrice, l.UnitDiscount, l.Subtotal, l.Total,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

func (r *SaleRepo) getOne(ctx context.Context, query string, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.getOne(ctx, saleSelect+` WHERE s.id = $1`, id)
}

// GetByIDForUpdate bloquea solo la fila de sales.
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.getOne(ctx, saleSelect+` WHERE s.id = $1 FOR UPDATE OF s`, id)
}

func (r *SaleRepo) ListLines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error) {
	query := `
		SELECT l.id, l.sale_id, l.product_id, l.warehouse_id, l.quantity, l.unit_price, l.unit_discount,
		       l.subtotal, l.total, COALESCE(p.name, '')
		FROM sale_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.sale_id = $1
		ORDER BY l.id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(
			&l.ID, &l.SaleID, &l.ProductID, &l.WarehouseID, &l.Quantity, &l.UnitPrice, &l.UnitDiscount,
			&l.Subtotal, &l.Total, &l.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *SaleRepo) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id int64, status entity.SaleStatus, modifiedAt time.Time) error {
	return r.exec(ctx, `UPDATE sales SET status = $2, modified_at = $3 WHERE id = $1`, id, string(status), modifiedAt)
}

func (r *SaleRepo) UpdateType(ctx context.Context, id int64, saleType entity.SaleType, modifiedAt time.Time) error {
	return r.exec(ctx, `UPDATE sales SET sale_type = $2, modified_at = $3 WHERE id = $1`, id, string(saleType), modifiedAt)
}

// List ventas en el rango [from, to] por fecha de venta, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	query := saleSelect + `
		WHERE ($1::timestamptz IS NULL OR s.sale_date >= $1)
		  AND ($2::timestamptz IS NULL OR s.sale_date <= $2)
		ORDER BY s.sale_date DESC, s.id DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
