package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido es un no-op después del Commit.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, NewUnitOfWork(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// unitOfWork agrupa los repositorios sobre el mismo Querier (pool o tx).
type unitOfWork struct {
	q Querier
}

// NewUnitOfWork construye la unidad de trabajo. Con el pool sirve para lecturas sin bloqueo.
func NewUnitOfWork(q Querier) repository.UnitOfWork {
	return &unitOfWork{q: q}
}

func (u *unitOfWork) StockPositions() repository.StockPositionRepository {
	return NewStockPositionRepository(u.q)
}

func (u *unitOfWork) Movements() repository.MovementRepository {
	return NewMovementRepository(u.q)
}

func (u *unitOfWork) Adjustments() repository.AdjustmentRepository {
	return NewAdjustmentRepository(u.q)
}

func (u *unitOfWork) Orders() repository.OrderRepository {
	return NewOrderRepository(u.q)
}

func (u *unitOfWork) Sales() repository.SaleRepository {
	return NewSaleRepository(u.q)
}

func (u *unitOfWork) Catalog() repository.CatalogRepository {
	return NewCatalogRepository(u.q)
}
