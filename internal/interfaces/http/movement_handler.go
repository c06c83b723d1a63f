package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/domain"
)

// MovementHandler historial de movimientos.
type MovementHandler struct {
	ledger *inventory.Ledger
}

func NewMovementHandler(ledger *inventory.Ledger) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimientos
// @Produce      json
// @Param        producto_id   query  int     false  "Filtrar por producto"
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (inclusiva)"
// @Param        limit         query  int     false  "Máximo 500, por defecto 100"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	productID, err := queryID(c, "producto_id")
	if err != nil {
		return respondError(c, err)
	}
	r, err := dto.ParseDateRange(c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		return respondError(c, err)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	if page.Limit > 500 || page.Offset < 0 {
		return respondError(c, domain.Invalid("limit", "limit <= 500 y offset >= 0"))
	}
	page.DefaultPage()

	list, err := h.ledger.ListMovements(c.UserContext(), dto.MovementListFilter{ProductID: productID, Range: r, Page: page})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(list))
}

// History godoc
// @Summary      Historial de un producto en todos los almacenes
// @Tags         movimientos
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {array}   dto.MovementResponse
// @Router       /movimientos/{productId}/historial [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.ledger.ProductHistory(c.UserContext(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(list))
}

// Create godoc
// @Summary      Registrar movimiento (posición en el body)
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MovementRequest  true  "producto_inventario_id, tipo, cantidad, motivo"
// @Success      201   {object}  dto.StockPositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /movimientos [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if in.StockPositionID <= 0 {
		return respondError(c, domain.Invalid("producto_inventario_id", "requerido"))
	}
	pos, err := h.ledger.ApplyMovement(c.UserContext(), GetUserID(c), in.StockPositionID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pos)
}
