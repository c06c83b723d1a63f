package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/orders"
)

// OrderHandler pedidos de entrada y salida. No mueven stock.
type OrderHandler struct {
	uc *orders.UseCase
}

func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Produce      json
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (inclusiva)"
// @Success      200  {array}   dto.OrderResponse
// @Router       /pedidos [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	r, err := dto.ParseDateRange(c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(list))
}

// Get godoc
// @Summary      Obtener pedido con detalles
// @Tags         pedidos
// @Produce      json
// @Param        id   path      int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	o, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

// Create godoc
// @Summary      Crear pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.OrderRequest  true  "tipo_pedido, cliente_id o proveedor_id, detalles"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	o, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// Update godoc
// @Summary      Reemplazar pedido y detalles
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "ID del pedido"
// @Param        body  body      dto.OrderRequest  true  "pedido completo"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.OrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	o, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         pedidos
// @Security     Bearer
// @Param        id  path  int  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
