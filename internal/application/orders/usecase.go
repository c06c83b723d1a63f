package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// UseCase pedidos de entrada (proveedor) y salida (cliente). No toca el inventario.
type UseCase struct {
	txRunner repository.TxRunner
	reader   repository.UnitOfWork
	taxRate  decimal.Decimal
	now      func() time.Time
}

// NewUseCase construye el caso de uso. taxRate se aplica sobre el subtotal del pedido.
func NewUseCase(txRunner repository.TxRunner, reader repository.UnitOfWork, taxRate decimal.Decimal) *UseCase {
	return &UseCase{txRunner: txRunner, reader: reader, taxRate: taxRate, now: time.Now}
}

// Create inserta cabecera y detalles en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.OrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.build(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	order.CreatedAt, order.UpdatedAt = now, now

	var out *dto.OrderResponse
	err = uc.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if err := checkReferences(ctx, uow, order); err != nil {
			return err
		}
		if err := uow.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("crear pedido: %w", err)
		}
		if err := insertLines(ctx, uow, order); err != nil {
			return err
		}
		out, err = load(ctx, uow, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update reemplaza cabecera y detalles de forma atómica. ErrOrderNotFound si no existe.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.OrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.build(in)
	if err != nil {
		return nil, err
	}
	order.ID = id
	order.UpdatedAt = uc.now()

	var out *dto.OrderResponse
	err = uc.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if err := checkReferences(ctx, uow, order); err != nil {
			return err
		}
		if err := uow.Orders().Update(ctx, order); err != nil {
			return err
		}
		if err := uow.Orders().DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("borrar detalles: %w", err)
		}
		if err := insertLines(ctx, uow, order); err != nil {
			return err
		}
		out, err = load(ctx, uow, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete borra detalles y cabecera. ErrOrderNotFound si no existe.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if err := uow.Orders().DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("borrar detalles: %w", err)
		}
		return uow.Orders().Delete(ctx, id)
	})
}

// Get pedido con detalles y nombres.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	return load(ctx, uc.reader, id)
}

// List pedidos del más reciente al más antiguo, con detalles.
func (uc *UseCase) List(ctx context.Context, r dto.DateRange) ([]dto.OrderResponse, error) {
	list, err := uc.reader.Orders().List(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		lines, err := uc.reader.Orders().ListLines(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Lines = lines
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// build valida el request y calcula los totales. El tipo decide la contraparte:
// ENTRY exige proveedor, EXIT exige cliente; la otra se descarta.
func (uc *UseCase) build(in dto.OrderRequest) (*entity.Order, error) {
	orderType, err := entity.ParseOrderType(in.OrderType)
	if err != nil {
		return nil, err
	}
	status, err := entity.ParseOrderStatus(in.Status)
	if err != nil {
		return nil, err
	}
	order := &entity.Order{
		OrderType: orderType,
		Status:    status,
		Notes:     strings.TrimSpace(in.Notes),
	}
	switch orderType {
	case entity.OrderEntry:
		if in.SupplierID == nil || *in.SupplierID <= 0 {
			return nil, domain.Invalid("proveedor_id", "requerido para pedidos de entrada")
		}
		order.SupplierID = in.SupplierID
	case entity.OrderExit:
		if in.CustomerID == nil || *in.CustomerID <= 0 {
			return nil, domain.Invalid("cliente_id", "requerido para pedidos de salida")
		}
		order.CustomerID = in.CustomerID
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	subtotal := decimal.Zero
	for i, l := range in.Lines {
		if l.ProductID <= 0 {
			return nil, domain.Invalid(fmt.Sprintf("detalles[%d].producto_id", i), "requerido")
		}
		if l.Quantity <= 0 {
			return nil, domain.Invalid(fmt.Sprintf("detalles[%d].cantidad", i), "debe ser mayor que cero")
		}
		if l.UnitPrice.IsNegative() {
			return nil, domain.Invalid(fmt.Sprintf("detalles[%d].precio_unitario", i), "no puede ser negativo")
		}
		gross := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		if l.Discount.IsNegative() || l.Discount.GreaterThan(gross) {
			return nil, domain.Invalid(fmt.Sprintf("detalles[%d].descuento", i), "debe estar entre 0 y cantidad*precio")
		}
		total := gross.Sub(l.Discount)
		order.Lines = append(order.Lines, &entity.OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.Round(2),
			Discount:  l.Discount.Round(2),
			Subtotal:  gross.Round(2),
			Total:     total.Round(2),
		})
		subtotal = subtotal.Add(total)
	}
	order.Subtotal = subtotal.Round(2)
	order.Taxes = subtotal.Mul(uc.taxRate).Round(2)
	order.Total = order.Subtotal.Add(order.Taxes)
	return order, nil
}

func checkReferences(ctx context.Context, uow repository.UnitOfWork, o *entity.Order) error {
	catalog := uow.Catalog()
	if o.SupplierID != nil {
		s, err := catalog.GetSupplier(ctx, *o.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrSupplierNotFound
		}
	}
	if o.CustomerID != nil {
		c, err := catalog.GetCustomer(ctx, *o.CustomerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCustomerNotFound
		}
	}
	for _, l := range o.Lines {
		p, err := catalog.GetProduct(ctx, l.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("producto %d: %w", l.ProductID, domain.ErrProductNotFound)
		}
	}
	return nil
}

func insertLines(ctx context.Context, uow repository.UnitOfWork, o *entity.Order) error {
	for _, l := range o.Lines {
		l.OrderID = o.ID
		if err := uow.Orders().CreateLine(ctx, l); err != nil {
			return fmt.Errorf("crear detalle: %w", err)
		}
	}
	return nil
}

func load(ctx context.Context, uow repository.UnitOfWork, id int64) (*dto.OrderResponse, error) {
	o, err := uow.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if o.Lines, err = uow.Orders().ListLines(ctx, id); err != nil {
		return nil, err
	}
	out := toOrderResponse(o)
	return &out, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:           o.ID,
		OrderType:    string(o.OrderType),
		Status:       string(o.Status),
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		Subtotal:     o.Subtotal,
		Taxes:        o.Taxes,
		Total:        o.Total,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Lines:        make([]dto.OrderLineResponse, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			Subtotal:    l.Subtotal,
			Total:       l.Total,
		})
	}
	return out
}
