package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var (
	_ repository.MovementRepository   = (*MovementRepo)(nil)
	_ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)
)

// MovementRepo registros de movimientos (solo INSERT y SELECT).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.stock_position_id, m.kind, m.direction, m.quantity, m.reason, m.created_by, m.created_at,
	       sp.product_id, sp.warehouse_id, COALESCE(p.name, ''), COALESCE(w.name, '')
	FROM stock_movements m
	JOIN stock_positions sp ON sp.id = m.stock_position_id
	LEFT JOIN products p ON p.id = sp.product_id
	LEFT JOIN warehouses w ON w.id = sp.warehouse_id`

// Create inserta el movimiento y asigna su id.
func (r *MovementRepo) Create(ctx context.Context, m *entity.MovementRecord) error {
	query := `
		INSERT INTO stock_movements (stock_position_id, kind, direction, quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.StockPositionID, string(m.Kind), string(m.Direction), m.Quantity, m.Reason, m.CreatedBy, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List movimientos filtrados, del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementRecord, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != nil {
		add("sp.product_id = $%d", *f.ProductID)
	}
	if f.From != nil {
		add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.created_at <= $%d", *f.To)
	}

	query := movementSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY m.created_at DESC, m.id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.list(ctx, query, args...)
}

// ListByPosition movimientos de una posición en orden cronológico.
func (r *MovementRepo) ListByPosition(ctx context.Context, stockPositionID int64) ([]*entity.MovementRecord, error) {
	return r.list(ctx, movementSelect+` WHERE m.stock_position_id = $1 ORDER BY m.created_at, m.id`, stockPositionID)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MovementRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.MovementRecord
	for rows.Next() {
		var m entity.MovementRecord
		var kind, dir string
		if err := rows.Scan(
			&m.ID, &m.StockPositionID, &kind, &dir, &m.Quantity, &m.Reason, &m.CreatedBy, &m.CreatedAt,
			&m.ProductID, &m.WarehouseID, &m.ProductName, &m.WarehouseName,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind, m.Direction = entity.MovementKind(kind), entity.MovementDirection(dir)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// AdjustmentRepo registros de ajustes (solo INSERT y SELECT).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create inserta el ajuste y asigna su id.
func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.AdjustmentRecord) error {
	query := `
		INSERT INTO stock_adjustments (stock_position_id, kind, previous_quantity, new_quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.StockPositionID, string(a.Kind), a.PreviousQuantity, a.NewQuantity, a.Reason, a.CreatedBy, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// List ajustes, opcionalmente de un producto, del más reciente al más antiguo.
func (r *AdjustmentRepo) List(ctx context.Context, productID *int64) ([]*entity.AdjustmentRecord, error) {
	query := `
		SELECT a.id, a.stock_position_id, a.kind, a.previous_quantity, a.new_quantity, a.reason, a.created_by, a.created_at,
		       sp.product_id, COALESCE(p.name, '')
		FROM stock_adjustments a
		JOIN stock_positions sp ON sp.id = a.stock_position_id
		LEFT JOIN products p ON p.id = sp.product_id
		WHERE ($1::bigint IS NULL OR sp.product_id = $1)
		ORDER BY a.created_at DESC, a.id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var out []*entity.AdjustmentRecord
	for rows.Next() {
		var a entity.AdjustmentRecord
		var kind string
		if err := rows.Scan(
			&a.ID, &a.StockPositionID, &kind, &a.PreviousQuantity, &a.NewQuantity, &a.Reason, &a.CreatedBy, &a.CreatedAt,
			&a.ProductID, &a.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		a.Kind = entity.AdjustmentKind(kind)
		out = append(out, &a)
	}
	return out, rows.Err()
}
