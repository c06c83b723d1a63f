package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
)

// InventoryHandler posiciones de stock y movimientos sobre una posición.
type InventoryHandler struct {
	ledger  *inventory.Ledger
	monitor *inventory.LowStockMonitor
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, monitor *inventory.LowStockMonitor) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, monitor: monitor}
}

// Query godoc
// @Summary      Consultar inventario
// @Tags         inventario
// @Produce      json
// @Param        producto_id  query  int  false  "Filtrar por producto"
// @Param        almacen_id   query  int  false  "Filtrar por almacén"
// @Success      200  {array}   dto.StockPositionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /inventario [get]
func (h *InventoryHandler) Query(c *fiber.Ctx) error {
	productID, err := queryID(c, "producto_id")
	if err != nil {
		return respondError(c, err)
	}
	warehouseID, err := queryID(c, "almacen_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.ledger.Query(c.UserContext(), productID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(list))
}

// LowStock godoc
// @Summary      Posiciones en o bajo el stock mínimo
// @Tags         inventario
// @Produce      json
// @Success      200  {array}   dto.StockPositionResponse
// @Router       /inventario/bajo-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.ledger.ListLowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(list))
}

// Replenishment godoc
// @Summary      Sugerencias de reposición
// @Description  Posiciones bajo el mínimo con la cantidad sugerida, en orden de prioridad.
// @Tags         inventario
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /inventario/reposicion [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.monitor.Suggestions(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"sugerencias": nonNil(list),
	})
}

// Get godoc
// @Summary      Obtener posición de stock
// @Tags         inventario
// @Produce      json
// @Param        id   path      int  true  "ID de la posición"
// @Success      200  {object}  dto.StockPositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventario/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	pos, err := h.ledger.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pos)
}

// Initialize godoc
// @Summary      Inicializar producto en un almacén
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InitializeStockRequest  true  "producto_id, almacen_id, cantidad inicial"
// @Success      201   {object}  dto.StockPositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /inventario/inicializar [post]
func (h *InventoryHandler) Initialize(c *fiber.Ctx) error {
	var in dto.InitializeStockRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	pos, err := h.ledger.Initialize(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pos)
}

// ApplyMovement godoc
// @Summary      Registrar movimiento sobre una posición
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "ID de la posición"
// @Param        body  body      dto.MovementRequest  true  "tipo (ENTRY|EXIT|ADJUSTMENT|TRANSFER), cantidad, motivo"
// @Success      200   {object}  dto.StockPositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /inventario/{id}/movimiento [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.MovementRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	pos, err := h.ledger.ApplyMovement(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pos)
}

// nonNil evita serializar null en listados vacíos.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
