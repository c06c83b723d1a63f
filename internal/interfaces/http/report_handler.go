package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/reports"
)

// ReportHandler generación de reportes PDF.
type ReportHandler struct {
	svc *reports.Service
}

func NewReportHandler(svc *reports.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Generate godoc
// @Summary      Generar reporte
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ReportRequest  true  "tipo (VENTAS|INVENTARIO|MOVIMIENTOS|GENERAL), formato (PDF), fecha_inicio, fecha_fin"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /reportes/generar [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	file, err := h.svc.Generate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}
