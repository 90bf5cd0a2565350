package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/reporting"
)

// ReporteHandler maneja las peticiones HTTP del reporte de reposición de un
// recuento cerrado.
type ReporteHandler struct {
	uc *reporting.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reporting.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte de faltantes agrupado por categoría
// @Description  Solo disponible con el recuento Cerrado; incluye subtotales, total general y resumen.
// @Tags         reporte
// @Produce      json
// @Param        id  path  int  true  "ID del recuento"
// @Success      200  {object}  dto.ReporteResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recuentos/{id}/reporte [get]
func (h *ReporteHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	out, err := h.uc.Compute(c.Context(), int64(id))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Action godoc
// @Summary      Acción sobre el reporte: export_csv, generate_summary o export_pdf
// @Tags         reporte
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del recuento"
// @Param        body  body  dto.ReporteActionRequest  true  "Acción y modo de vista"
// @Success      200   {object}  dto.SummaryResponse  "generate_summary"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recuentos/{id}/reporte [post]
func (h *ReporteHandler) Action(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	var in dto.ReporteActionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}

	switch in.Action {
	case "export_csv":
		out, err := h.uc.ExportCSV(c.Context(), int64(id))
		if err != nil {
			return errorJSON(c, err)
		}
		return sendExport(c, out)
	case "generate_summary":
		out, err := h.uc.Summary(c.Context(), int64(id), in.ViewMode)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(out)
	case "export_pdf":
		out, err := h.uc.ExportPDF(c.Context(), int64(id))
		if err != nil {
			return errorJSON(c, err)
		}
		return sendExport(c, out)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "action debe ser 'export_csv', 'generate_summary' o 'export_pdf'",
		})
	}
}
