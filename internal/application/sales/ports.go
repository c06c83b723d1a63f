package sales

import (
	"context"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// StockLedger operaciones del ledger que la venta ejecuta dentro de su propia transacción.
type StockLedger interface {
	LockKeys(ctx context.Context, uow repository.UnitOfWork, keys []entity.StockKey) (map[entity.StockKey]*entity.StockPosition, error)
	DebitInTx(ctx context.Context, uow repository.UnitOfWork, key entity.StockKey, qty int64, reason string, userID int64) (*entity.StockPosition, error)
	CreditInTx(ctx context.Context, uow repository.UnitOfWork, key entity.StockKey, qty int64, reason string, userID int64) (*entity.StockPosition, error)
	AfterCommit(ctx context.Context, kind string)
}

// Metrics resultado de cada intento de venta (created, rejected, error, cancelled).
type Metrics interface {
	Sale(result string)
}

type nopMetrics struct{}

func (nopMetrics) Sale(string) {}
