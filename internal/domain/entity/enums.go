package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ventas/internal/domain"
)

// MovementKind tipo de movimiento de inventario.
type MovementKind string

const (
	MovementEntry      MovementKind = "ENTRY"      // entrada
	MovementExit       MovementKind = "EXIT"       // salida
	MovementAdjustment MovementKind = "ADJUSTMENT" // ajuste (suma)
	MovementTransfer   MovementKind = "TRANSFER"   // traslado entre almacenes
)

// MovementDirection sentido del cambio de cantidad.
type MovementDirection string

const (
	DirectionIn  MovementDirection = "IN"
	DirectionOut MovementDirection = "OUT"
)

// AdjustmentKind tipo de ajuste manual.
type AdjustmentKind string

const (
	AdjustmentIncrement  AdjustmentKind = "INCREMENT"
	AdjustmentDecrement  AdjustmentKind = "DECREMENT"
	AdjustmentCorrection AdjustmentKind = "CORRECTION"
)

// OrderType entrada (compra a proveedor) o salida (a cliente).
type OrderType string

const (
	OrderEntry OrderType = "ENTRY"
	OrderExit  OrderType = "EXIT"
)

// OrderStatus estado de un pedido.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// SaleType contado o crédito.
type SaleType string

const (
	SaleCash   SaleType = "CASH"
	SaleCredit SaleType = "CREDIT"
)

// PaymentMethod medio de pago de una venta.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// SaleStatus estado de una venta.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "COMPLETED"
	SaleCancelled SaleStatus = "CANCELLED"
	SalePending   SaleStatus = "PENDING"
)

// Roles válidos para User.
const (
	RoleAdmin      = "ADMINISTRADOR"
	RoleTechnician = "TECNICO_EJECUTIVO"
)

var movementKinds = map[string]MovementKind{
	"ENTRY": MovementEntry, "ENTRADA": MovementEntry,
	"EXIT": MovementExit, "SALIDA": MovementExit,
	"ADJUSTMENT": MovementAdjustment, "AJUSTE": MovementAdjustment,
	"TRANSFER": MovementTransfer, "TRASLADO": MovementTransfer,
}

var adjustmentKinds = map[string]AdjustmentKind{
	"INCREMENT": AdjustmentIncrement, "INCREMENTO": AdjustmentIncrement,
	"DECREMENT": AdjustmentDecrement, "DECREMENTO": AdjustmentDecrement,
	"CORRECTION": AdjustmentCorrection, "CORRECCION": AdjustmentCorrection, "CORRECCIÓN": AdjustmentCorrection,
}

var orderTypes = map[string]OrderType{
	"ENTRY": OrderEntry, "ENTRADA": OrderEntry,
	"EXIT": OrderExit, "SALIDA": OrderExit,
}

var orderStatuses = map[string]OrderStatus{
	"PENDING": OrderPending, "PENDIENTE": OrderPending,
	"IN_PROGRESS": OrderInProgress, "EN_PROCESO": OrderInProgress,
	"COMPLETED": OrderCompleted, "COMPLETADO": OrderCompleted,
	"CANCELLED": OrderCancelled, "CANCELADO": OrderCancelled,
}

var saleTypes = map[string]SaleType{
	"CASH": SaleCash, "CONTADO": SaleCash,
	"CREDIT": SaleCredit, "CREDITO": SaleCredit, "CRÉDITO": SaleCredit,
}

var paymentMethods = map[string]PaymentMethod{
	"CASH": PaymentCash, "EFECTIVO": PaymentCash,
	"CARD": PaymentCard, "TARJETA": PaymentCard,
	"TRANSFER": PaymentTransfer, "TRANSFERENCIA": PaymentTransfer,
}

var saleStatuses = map[string]SaleStatus{
	"COMPLETED": SaleCompleted, "COMPLETADA": SaleCompleted,
	"CANCELLED": SaleCancelled, "CANCELADA": SaleCancelled,
	"PENDING": SalePending, "PENDIENTE": SalePending,
}

var roles = map[string]string{
	"ADMINISTRADOR": RoleAdmin, "ADMIN": RoleAdmin,
	"TECNICO_EJECUTIVO": RoleTechnician, "TECNICO": RoleTechnician,
}

func parseEnum[T ~string](field, raw string, values map[string]T) (T, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if v, ok := values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", field, raw, domain.ErrInvalidEnum)
}

func ParseMovementKind(s string) (MovementKind, error) {
	return parseEnum("tipo de movimiento", s, movementKinds)
}

func ParseAdjustmentKind(s string) (AdjustmentKind, error) {
	return parseEnum("tipo de ajuste", s, adjustmentKinds)
}

func ParseOrderType(s string) (OrderType, error) {
	return parseEnum("tipo de pedido", s, orderTypes)
}

// ParseOrderStatus vacío = PENDING.
func ParseOrderStatus(s string) (OrderStatus, error) {
	if strings.TrimSpace(s) == "" {
		return OrderPending, nil
	}
	return parseEnum("estado de pedido", s, orderStatuses)
}

func ParseSaleType(s string) (SaleType, error) {
	return parseEnum("tipo de venta", s, saleTypes)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return parseEnum("método de pago", s, paymentMethods)
}

func ParseSaleStatus(s string) (SaleStatus, error) {
	return parseEnum("estado de venta", s, saleStatuses)
}

func ParseRole(s string) (string, error) {
	return parseEnum("rol", s, roles)
}
