package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
)

// SaleHandler ventas de punto de venta.
type SaleHandler struct {
	uc *sales.UseCase
}

func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (inclusiva)"
// @Success      200  {array}   dto.SaleResponse
// @Router       /ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener venta con detalles
// @Tags         ventas
// @Produce      json
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ventas/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de cada línea en una sola transacción. El operador es el usuario del token.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaleRequest  true  "tipo_venta, metodo_pago, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// Cancel godoc
// @Summary      Cancelar venta
// @Description  Devuelve el stock de cada línea. Una venta cancelada no puede cancelarse de nuevo.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /ventas/{id}/cancelar [put]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.Cancel(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// UpdateType godoc
// @Summary      Cambiar tipo de venta
// @Description  Solo cambia tipo_venta; estado y totales no se recalculan.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "ID de la venta"
// @Param        body  body      dto.UpdateSaleTypeRequest  true  "tipo_venta"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /ventas/{id}/actualizar [put]
func (h *SaleHandler) UpdateType(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateSaleTypeRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.UpdateSaleType(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}
