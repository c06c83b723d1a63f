package repository

import "context"

// UnitOfWork agrupa los repositorios atados a una misma conexión o transacción.
// Fuera de una transacción se usa para lecturas sin bloqueo.
type UnitOfWork interface {
	StockPositions() StockPositionRepository
	Movements() MovementRepository
	Adjustments() AdjustmentRepository
	Orders() OrderRepository
	Sales() SaleRepository
	Catalog() CatalogRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback en cualquier
// otro caso (incluida la cancelación del ctx). Ningún bloqueo sobrevive a Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
