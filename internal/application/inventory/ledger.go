package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// Ledger es el único punto que lee y modifica la cantidad de una StockPosition.
// Toda mutación bloquea la fila (SELECT FOR UPDATE), escribe la nueva cantidad y agrega
// su registro de auditoría dentro de la misma transacción.
type Ledger struct {
	txRunner repository.TxRunner
	reader   repository.UnitOfWork
	cache    LowStockCache
	metrics  Metrics
	now      func() time.Time
}

// NewLedger construye el ledger. cache y metrics pueden ser nil.
func NewLedger(txRunner repository.TxRunner, reader repository.UnitOfWork, cache LowStockCache, metrics Metrics) *Ledger {
	if cache == nil {
		cache = NopCache{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Ledger{
		txRunner: txRunner,
		reader:   reader,
		cache:    cache,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Initialize crea la posición de un producto en un almacén. Falla con ErrDuplicatePosition
// si el par ya existe. Una cantidad inicial positiva queda registrada como ENTRY.
func (l *Ledger) Initialize(ctx context.Context, userID int64, in dto.InitializeStockRequest) (*dto.StockPositionResponse, error) {
	if in.ProductID <= 0 || in.WarehouseID <= 0 {
		return nil, domain.Invalid("producto_id/almacen_id", "requeridos")
	}
	if in.Quantity < 0 || in.MinStock < 0 || in.MaxStock < 0 {
		return nil, domain.Invalid("cantidad", "no puede ser negativa")
	}
	if in.MaxStock > 0 && in.MinStock > in.MaxStock {
		return nil, domain.Invalid("stock_minimo", "no puede superar stock_maximo")
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.Invalid("precio", "no puede ser negativo")
	}

	var pos *entity.StockPosition
	err := l.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		product, err := uow.Catalog().GetProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		wh, err := uow.Catalog().GetWarehouse(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrWarehouseNotFound
		}
		key := entity.StockKey{ProductID: in.ProductID, WarehouseID: in.WarehouseID}
		existing, err := uow.StockPositions().GetByKey(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicatePosition
		}

		now := l.now()
		pos = &entity.StockPosition{
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			MinStock:      in.MinStock,
			MaxStock:      in.MaxStock,
			PurchasePrice: in.PurchasePrice,
			SalePrice:     in.SalePrice,
			Location:      strings.TrimSpace(in.Location),
			CreatedAt:     now,
			UpdatedAt:     now,
			ProductName:   product.Name,
			WarehouseName: wh.Name,
		}
		if pos.SalePrice.IsZero() {
			pos.SalePrice = product.Price
		}
		if err := uow.StockPositions().Create(ctx, pos); err != nil {
			return err
		}
		if in.Quantity == 0 {
			return nil
		}
		return l.apply(ctx, uow, pos, entity.MovementEntry, entity.DirectionIn, in.Quantity, "inventario inicial", userID)
	})
	if err != nil {
		return nil, err
	}
	l.AfterCommit(ctx, "INITIALIZE")
	return toStockPositionResponse(pos), nil
}

// ApplyMovement aplica un movimiento sobre la posición positionID.
// ENTRY y ADJUSTMENT suman, EXIT resta y TRANSFER mueve la cantidad al almacén destino
// del mismo producto (dos registros, OUT e IN, en la misma transacción).
func (l *Ledger) ApplyMovement(ctx context.Context, userID, positionID int64, in dto.MovementRequest) (*dto.StockPositionResponse, error) {
	kind, err := entity.ParseMovementKind(in.Kind)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("cantidad", "debe ser mayor que cero")
	}
	if kind == entity.MovementTransfer && (in.TargetWarehouseID == nil || *in.TargetWarehouseID <= 0) {
		return nil, domain.Invalid("almacen_destino_id", "requerido para TRASLADO")
	}
	reason := strings.TrimSpace(in.Reason)

	var pos *entity.StockPosition
	err = l.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if kind == entity.MovementTransfer {
			src, err := l.transfer(ctx, uow, positionID, *in.TargetWarehouseID, in.Quantity, reason, userID)
			pos = src
			return err
		}
		locked, err := uow.StockPositions().GetByIDForUpdate(ctx, positionID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrPositionNotFound
		}
		dir := entity.DirectionIn
		if kind == entity.MovementExit {
			dir = entity.DirectionOut
		}
		pos = locked
		return l.apply(ctx, uow, locked, kind, dir, in.Quantity, reason, userID)
	})
	if err != nil {
		return nil, err
	}
	l.AfterCommit(ctx, string(kind))
	return toStockPositionResponse(pos), nil
}

// transfer bloquea origen y destino en orden de clave y aplica las dos patas.
func (l *Ledger) transfer(ctx context.Context, uow repository.UnitOfWork, sourceID, targetWarehouseID, qty int64, reason string, userID int64) (*entity.StockPosition, error) {
	src, err := uow.StockPositions().GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, domain.ErrPositionNotFound
	}
	if src.WarehouseID == targetWarehouseID {
		return nil, domain.Invalid("almacen_destino_id", "debe ser distinto del almacén origen")
	}
	srcKey := entity.StockKey{ProductID: src.ProductID, WarehouseID: src.WarehouseID}
	dstKey := entity.StockKey{ProductID: src.ProductID, WarehouseID: targetWarehouseID}

	locked, err := l.LockKeys(ctx, uow, []entity.StockKey{srcKey, dstKey})
	if err != nil {
		return nil, err
	}
	source, dest := locked[srcKey], locked[dstKey]
	if source == nil {
		return nil, domain.ErrPositionNotFound
	}
	if dest == nil {
		return nil, fmt.Errorf("almacén destino %d sin inventario inicializado: %w", targetWarehouseID, domain.ErrPositionNotFound)
	}
	if reason == "" {
		reason = fmt.Sprintf("traslado %s -> %s", source.WarehouseName, dest.WarehouseName)
	}
	if err := l.apply(ctx, uow, source, entity.MovementTransfer, entity.DirectionOut, qty, reason, userID); err != nil {
		return nil, err
	}
	if err := l.apply(ctx, uow, dest, entity.MovementTransfer, entity.DirectionIn, qty, reason, userID); err != nil {
		return nil, err
	}
	return source, nil
}

// LockKeys bloquea las posiciones en orden ascendente de (producto, almacén) para que dos
// transacciones que tocan las mismas filas nunca se esperen en ciclo. Las claves sin
// posición quedan con valor nil en el mapa.
func (l *Ledger) LockKeys(ctx context.Context, uow repository.UnitOfWork, keys []entity.StockKey) (map[entity.StockKey]*entity.StockPosition, error) {
	sorted := make([]entity.StockKey, 0, len(keys))
	seen := make(map[entity.StockKey]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			sorted = append(sorted, k)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := make(map[entity.StockKey]*entity.StockPosition, len(sorted))
	for _, k := range sorted {
		pos, err := uow.StockPositions().GetByKeyForUpdate(ctx, k)
		if err != nil {
			return nil, err
		}
		out[k] = pos
	}
	return out, nil
}

// DebitInTx descuenta qty de la posición (producto, almacén) dentro de la transacción del caller
// y registra un EXIT. Retorna *domain.InsufficientStockError si la cantidad quedaría negativa.
func (l *Ledger) DebitInTx(ctx context.Context, uow repository.UnitOfWork, key entity.StockKey, qty int64, reason string, userID int64) (*entity.StockPosition, error) {
	return l.moveByKey(ctx, uow, key, entity.MovementExit, entity.DirectionOut, qty, reason, userID)
}

// CreditInTx suma qty a la posición (producto, almacén) y registra un ENTRY.
func (l *Ledger) CreditInTx(ctx context.Context, uow repository.UnitOfWork, key entity.StockKey, qty int64, reason string, userID int64) (*entity.StockPosition, error) {
	return l.moveByKey(ctx, uow, key, entity.MovementEntry, entity.DirectionIn, qty, reason, userID)
}

func (l *Ledger) moveByKey(ctx context.Context, uow repository.UnitOfWork, key entity.StockKey, kind entity.MovementKind, dir entity.MovementDirection, qty int64, reason string, userID int64) (*entity.StockPosition, error) {
	if qty <= 0 {
		return nil, domain.Invalid("cantidad", "debe ser mayor que cero")
	}
	pos, err := uow.StockPositions().GetByKeyForUpdate(ctx, key)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, fmt.Errorf("producto %d en almacén %d: %w", key.ProductID, key.WarehouseID, domain.ErrPositionNotFound)
	}
	if err := l.apply(ctx, uow, pos, kind, dir, qty, reason, userID); err != nil {
		return nil, err
	}
	return pos, nil
}

// apply calcula la nueva cantidad sobre una fila ya bloqueada, la persiste y agrega el movimiento.
func (l *Ledger) apply(ctx context.Context, uow repository.UnitOfWork, pos *entity.StockPosition, kind entity.MovementKind, dir entity.MovementDirection, qty int64, reason string, userID int64) error {
	newQty := pos.Quantity + qty
	if dir == entity.DirectionOut {
		newQty = pos.Quantity - qty
		if newQty < 0 {
			return &domain.InsufficientStockError{
				ProductID:   pos.ProductID,
				WarehouseID: pos.WarehouseID,
				ProductName: pos.ProductName,
				Available:   pos.Quantity,
				Requested:   qty,
			}
		}
	}
	if err := uow.StockPositions().UpdateQuantity(ctx, pos.ID, newQty); err != nil {
		return err
	}
	now := l.now()
	pos.Quantity = newQty
	pos.UpdatedAt = now

	return uow.Movements().Create(ctx, &entity.MovementRecord{
		StockPositionID: pos.ID,
		Kind:            kind,
		Direction:       dir,
		Quantity:        qty,
		Reason:          reason,
		CreatedBy:       userRef(userID),
		CreatedAt:       now,
		ProductID:       pos.ProductID,
		WarehouseID:     pos.WarehouseID,
		ProductName:     pos.ProductName,
		WarehouseName:   pos.WarehouseName,
	})
}

// AfterCommit invalida la caché de bajo stock y cuenta la mutación. Se llama solo tras Commit.
func (l *Ledger) AfterCommit(ctx context.Context, kind string) {
	l.cache.Invalidate(ctx)
	l.metrics.StockMutation(kind)
}

// Get devuelve una posición por id.
func (l *Ledger) Get(ctx context.Context, id int64) (*dto.StockPositionResponse, error) {
	pos, err := l.reader.StockPositions().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, domain.ErrPositionNotFound
	}
	return toStockPositionResponse(pos), nil
}

// Query lista posiciones, opcionalmente filtradas por producto y/o almacén.
func (l *Ledger) Query(ctx context.Context, productID, warehouseID *int64) ([]dto.StockPositionResponse, error) {
	list, err := l.reader.StockPositions().List(ctx, repository.StockPositionFilter{ProductID: productID, WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}
	return toStockPositionResponses(list), nil
}

// ListLowStock posiciones con cantidad <= stock mínimo (cache-aside).
func (l *Ledger) ListLowStock(ctx context.Context) ([]dto.StockPositionResponse, error) {
	if cached, ok := l.cache.Get(ctx); ok {
		return cached, nil
	}
	list, err := l.reader.StockPositions().ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := toStockPositionResponses(list)
	l.cache.Set(ctx, out)
	return out, nil
}

// ListMovements lista movimientos del más reciente al más antiguo.
func (l *Ledger) ListMovements(ctx context.Context, f dto.MovementListFilter) ([]dto.MovementResponse, error) {
	list, err := l.reader.Movements().List(ctx, repository.MovementFilter{
		ProductID: f.ProductID,
		From:      f.Range.From,
		To:        f.Range.To,
		Limit:     f.Page.Limit,
		Offset:    f.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ProductHistory movimientos de un producto en todos sus almacenes.
func (l *Ledger) ProductHistory(ctx context.Context, productID int64) ([]dto.MovementResponse, error) {
	list, err := l.reader.Movements().List(ctx, repository.MovementFilter{ProductID: &productID})
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func userRef(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
