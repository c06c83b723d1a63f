package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// UseCase ventas de punto de venta: cada línea descuenta stock a través del ledger.
type UseCase struct {
	txRunner repository.TxRunner
	reader   repository.UnitOfWork
	ledger   StockLedger
	taxRate  decimal.Decimal
	metrics  Metrics
	now      func() time.Time
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(txRunner repository.TxRunner, reader repository.UnitOfWork, ledger StockLedger, taxRate decimal.Decimal, metrics Metrics) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		txRunner: txRunner,
		reader:   reader,
		ledger:   ledger,
		taxRate:  taxRate,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Create registra la venta y descuenta el stock de cada línea en una sola transacción.
// Si cualquier línea falla no queda ni la venta ni ningún descuento.
func (uc *UseCase) Create(ctx context.Context, operatorID int64, in dto.SaleRequest) (*dto.SaleResponse, error) {
	out, err := uc.create(ctx, operatorID, in)
	if err != nil {
		if IsRejection(err) {
			uc.metrics.Sale("rejected")
		} else {
			uc.metrics.Sale("error")
		}
		return nil, err
	}
	uc.metrics.Sale("created")
	return out, nil
}

func (uc *UseCase) create(ctx context.Context, operatorID int64, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptySale
	}
	saleType, err := entity.ParseSaleType(in.SaleType)
	if err != nil {
		return nil, err
	}
	payment, err := entity.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	for i, it := range in.Items {
		if it.ProductID <= 0 || it.WarehouseID <= 0 {
			return nil, domain.Invalid(fmt.Sprintf("items[%d]", i), "producto_id y almacen_id requeridos")
		}
		if it.Quantity <= 0 {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].cantidad", i), "debe ser mayor que cero")
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].precio_unitario", i), "no puede ser negativo")
		}
	}

	positions, err := uc.precheck(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sale := &entity.Sale{
		SaleNumber:    saleNumber(now),
		SaleDate:      now,
		CustomerID:    in.CustomerID,
		OperatorID:    operatorID,
		SaleType:      saleType,
		PaymentMethod: payment,
		Status:        entity.InitialStatus(saleType),
		Notes:         strings.TrimSpace(in.Notes),
		ModifiedAt:    now,
	}
	subtotal, discount := decimal.Zero, decimal.Zero
	for i, it := range in.Items {
		key := entity.StockKey{ProductID: it.ProductID, WarehouseID: it.WarehouseID}
		price := it.UnitPrice
		if price.IsZero() {
			price = positions[key].SalePrice
		}
		if it.UnitDiscount.IsNegative() || it.UnitDiscount.GreaterThan(price) {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].descuento_unitario", i), "debe estar entre 0 y el precio unitario")
		}
		qty := decimal.NewFromInt(it.Quantity)
		lineSubtotal := price.Mul(qty)
		lineDiscount := it.UnitDiscount.Mul(qty)
		sale.Lines = append(sale.Lines, &entity.SaleLine{
			ProductID:    it.ProductID,
			WarehouseID:  it.WarehouseID,
			Quantity:     it.Quantity,
			UnitPrice:    price.Round(2),
			UnitDiscount: it.UnitDiscount.Round(2),
			Subtotal:     lineSubtotal.Round(2),
			Total:        lineSubtotal.Sub(lineDiscount).Round(2),
		})
		subtotal = subtotal.Add(lineSubtotal)
		discount = discount.Add(lineDiscount)
	}
	taxes := subtotal.Mul(uc.taxRate)
	sale.Subtotal = subtotal.Round(2)
	sale.Discount = discount.Round(2)
	sale.Taxes = taxes.Round(2)
	sale.Total = subtotal.Sub(discount).Add(taxes).Round(2)

	var out *dto.SaleResponse
	err = uc.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if sale.CustomerID != nil {
			c, err := uow.Catalog().GetCustomer(ctx, *sale.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.ErrCustomerNotFound
			}
		}
		keys := make([]entity.StockKey, 0, len(sale.Lines))
		for _, l := range sale.Lines {
			keys = append(keys, l.Key())
		}
		if _, err := uc.ledger.LockKeys(ctx, uow, keys); err != nil {
			return err
		}
		if err := uow.Sales().Create(ctx, sale); err != nil {
			return err
		}
		reason := "venta " + sale.SaleNumber
		for _, l := range sale.Lines {
			l.SaleID = sale.ID
			if err := uow.Sales().CreateLine(ctx, l); err != nil {
				return fmt.Errorf("crear detalle de venta: %w", err)
			}
			if _, err := uc.ledger.DebitInTx(ctx, uow, l.Key(), l.Quantity, reason, operatorID); err != nil {
				return err
			}
		}
		out, err = load(ctx, uow, sale.ID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.ledger.AfterCommit(ctx, "SALE")
	return out, nil
}

// precheck lectura optimista sin bloqueo: suma lo pedido por (producto, almacén) y compara
// con lo disponible. El descuento bajo bloqueo sigue siendo la verificación definitiva.
func (uc *UseCase) precheck(ctx context.Context, items []dto.SaleItemRequest) (map[entity.StockKey]*entity.StockPosition, error) {
	requested := make(map[entity.StockKey]int64, len(items))
	order := make([]entity.StockKey, 0, len(items))
	for _, it := range items {
		key := entity.StockKey{ProductID: it.ProductID, WarehouseID: it.WarehouseID}
		if _, seen := requested[key]; !seen {
			order = append(order, key)
		}
		requested[key] += it.Quantity
	}

	positions := make(map[entity.StockKey]*entity.StockPosition, len(order))
	for _, key := range order {
		pos, err := uc.reader.StockPositions().GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if pos == nil {
			return nil, fmt.Errorf("producto %d en almacén %d: %w", key.ProductID, key.WarehouseID, domain.ErrProductNotFound)
		}
		if pos.Quantity < requested[key] {
			return nil, &domain.InsufficientStockError{
				ProductID:   key.ProductID,
				WarehouseID: key.WarehouseID,
				ProductName: pos.ProductName,
				Available:   pos.Quantity,
				Requested:   requested[key],
			}
		}
		positions[key] = pos
	}
	return positions, nil
}

// Cancel devuelve al inventario cada línea y marca la venta CANCELLED.
// Dos cancelaciones simultáneas se serializan sobre la cabecera; la segunda recibe ErrSaleAlreadyCancelled.
func (uc *UseCase) Cancel(ctx context.Context, userID, saleID int64) (*dto.SaleResponse, error) {
	var out *dto.SaleResponse
	err := uc.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		sale, err := lockOpenSale(ctx, uow, saleID)
		if err != nil {
			return err
		}
		lines, err := uow.Sales().ListLines(ctx, saleID)
		if err != nil {
			return err
		}
		keys := make([]entity.StockKey, 0, len(lines))
		for _, l := range lines {
			keys = append(keys, l.Key())
		}
		if _, err := uc.ledger.LockKeys(ctx, uow, keys); err != nil {
			return err
		}
		reason := "cancelación venta " + sale.SaleNumber
		for _, l := range lines {
			if _, err := uc.ledger.CreditInTx(ctx, uow, l.Key(), l.Quantity, reason, userID); err != nil {
				return err
			}
		}
		if err := uow.Sales().UpdateStatus(ctx, saleID, entity.SaleCancelled, uc.now()); err != nil {
			return err
		}
		out, err = load(ctx, uow, saleID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.ledger.AfterCommit(ctx, "SALE_CANCEL")
	uc.metrics.Sale("cancelled")
	return out, nil
}

// UpdateSaleType cambia solo el tipo de venta y la fecha de modificación.
// El estado no se recalcula: una venta CASH pasada a CREDIT sigue COMPLETED.
func (uc *UseCase) UpdateSaleType(ctx context.Context, saleID int64, in dto.UpdateSaleTypeRequest) (*dto.SaleResponse, error) {
	saleType, err := entity.ParseSaleType(in.SaleType)
	if err != nil {
		return nil, err
	}
	var out *dto.SaleResponse
	err = uc.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if _, err := lockOpenSale(ctx, uow, saleID); err != nil {
			return err
		}
		if err := uow.Sales().UpdateType(ctx, saleID, saleType, uc.now()); err != nil {
			return err
		}
		out, err = load(ctx, uow, saleID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get venta con detalles.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	return load(ctx, uc.reader, id, true)
}

// List ventas del rango, más recientes primero, sin detalles.
func (uc *UseCase) List(ctx context.Context, r dto.DateRange) ([]dto.SaleResponse, error) {
	list, err := uc.reader.Sales().List(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

func lockOpenSale(ctx context.Context, uow repository.UnitOfWork, id int64) (*entity.Sale, error) {
	sale, err := uow.Sales().GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if sale.Status == entity.SaleCancelled {
		return nil, domain.ErrSaleAlreadyCancelled
	}
	return sale, nil
}

func load(ctx context.Context, uow repository.UnitOfWork, id int64, withLines bool) (*dto.SaleResponse, error) {
	sale, err := uow.Sales().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if withLines {
		if sale.Lines, err = uow.Sales().ListLines(ctx, id); err != nil {
			return nil, err
		}
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// saleNumber V-YYYYMMDD-HHMMSS-XXXXXX con sufijo aleatorio de un UUID.
func saleNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("V-%s-%s", at.Format("20060102-150405"), suffix)
}

// IsRejection indica si err es un rechazo de negocio (no un fallo de infraestructura).
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrInsufficientStock)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		SaleDate:      s.SaleDate,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		OperatorID:    s.OperatorID,
		OperatorName:  s.OperatorName,
		SaleType:      string(s.SaleType),
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Taxes:         s.Taxes,
		Total:         s.Total,
		Notes:         s.Notes,
		ModifiedAt:    s.ModifiedAt,
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			WarehouseID:  l.WarehouseID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			UnitDiscount: l.UnitDiscount,
			Subtotal:     l.Subtotal,
			Total:        l.Total,
		})
	}
	return out
}
