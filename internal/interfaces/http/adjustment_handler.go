package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
)

// AdjustmentHandler ajustes manuales de cantidad.
type AdjustmentHandler struct {
	uc *inventory.AdjustmentUseCase
}

func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar ajustes
// @Tags         ajustes
// @Produce      json
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /ajustes [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(list))
}

// ListByProduct godoc
// @Summary      Ajustes de un producto
// @Tags         ajustes
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /ajustes/producto/{id} [get]
func (h *AdjustmentHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListByProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(list))
}

// Create godoc
// @Summary      Registrar ajuste
// @Description  Fija cantidad_nueva y registra como anterior la cantidad real leída bajo bloqueo.
// @Description  Sin cantidad_anterior el ajuste siempre sobrescribe.
// @Description  Con cantidad_anterior distinta de la actual responde 409 CONFLICT y no escribe nada.
// @Tags         ajustes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdjustmentRequest  true  "producto_inventario_id, tipo, cantidad_nueva, motivo"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "cantidad_anterior desactualizada"
// @Router       /ajustes [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	adj, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(adj)
}
