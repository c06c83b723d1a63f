package domain

import (
	"errors"
	"fmt"
)

// Errores base (sin dependencias externas). La capa HTTP traduce cada familia a un status.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Errores específicos: envuelven a un error base para que errors.Is funcione por familia.
var (
	ErrInvalidEnum   = fmt.Errorf("valor no permitido: %w", ErrInvalidInput)
	ErrEmptySale     = fmt.Errorf("la venta debe tener al menos un producto: %w", ErrInvalidInput)
	ErrEmptyOrder    = fmt.Errorf("el pedido debe tener al menos un detalle: %w", ErrInvalidInput)
	ErrInvalidReport = fmt.Errorf("tipo o formato de reporte no soportado: %w", ErrInvalidInput)

	ErrPositionNotFound  = fmt.Errorf("producto en inventario no encontrado: %w", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrWarehouseNotFound = fmt.Errorf("almacén no encontrado: %w", ErrNotFound)
	ErrCustomerNotFound  = fmt.Errorf("cliente no encontrado: %w", ErrNotFound)
	ErrSupplierNotFound  = fmt.Errorf("proveedor no encontrado: %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("pedido no encontrado: %w", ErrNotFound)
	ErrSaleNotFound      = fmt.Errorf("venta no encontrada: %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)

	ErrDuplicatePosition    = fmt.Errorf("el producto ya está inicializado en este almacén: %w", ErrConflict)
	ErrDuplicateSaleNumber  = fmt.Errorf("número de venta repetido: %w", ErrConflict)
	ErrSaleAlreadyCancelled = fmt.Errorf("la venta ya está cancelada: %w", ErrConflict)
	ErrStaleAdjustment      = fmt.Errorf("la cantidad anterior no coincide con la actual: %w", ErrConflict)
	ErrUsernameTaken        = fmt.Errorf("el nombre de usuario o email ya está registrado: %w", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("credenciales inválidas: %w", ErrUnauthorized)
	ErrInactiveUser       = fmt.Errorf("usuario inactivo: %w", ErrUnauthorized)
)

// ValidationError error de validación con detalle del campo.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is hace que errors.Is(err, ErrInvalidInput) sea verdadero.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientStockError indica que una salida dejaría la cantidad en negativo.
type InsufficientStockError struct {
	ProductID   int64
	WarehouseID int64
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = fmt.Sprintf("producto %d", e.ProductID)
	}
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", name, e.Available, e.Requested)
}

// Is hace que errors.Is(err, ErrInsufficientStock) sea verdadero.
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
