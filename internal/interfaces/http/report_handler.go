package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/usecase"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// ReportHandler maneja las peticiones HTTP de los partes de stock de empleados.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportFilterFromQuery(c *fiber.Ctx) repository.ReportFilter {
	return repository.ReportFilter{
		Mes:       c.Query("mes"),
		Categoria: c.Query("categoria"),
		Limit:     c.QueryInt("limit", 0),
	}
}

// List godoc
// @Summary      Listar partes con estadísticas
// @Tags         reports
// @Produce      json
// @Param        mes        query  string  false  "Mes YYYY-MM"
// @Param        categoria  query  string  false  "Categoría"
// @Param        limit      query  int     false  "Límite"  default(100)
// @Success      200  {object}  dto.ReportListResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), reportFilterFromQuery(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar un parte de stock
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReportRequest  true  "Parte del empleado"
// @Success      201   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener un parte por ID
// @Tags         reports
// @Produce      json
// @Param        id  path  int  true  "ID del parte"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar un parte
// @Tags         reports
// @Produce      json
// @Param        id  path  int  true  "ID del parte"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	out, err := h.uc.Delete(c.Context(), int64(id))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar partes filtrados como CSV
// @Tags         reports
// @Produce      text/csv
// @Param        mes        query  string  false  "Mes YYYY-MM"
// @Param        categoria  query  string  false  "Categoría"
// @Success      200  {string}  string  "CSV"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	out, err := h.uc.ExportCSV(c.Context(), reportFilterFromQuery(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return sendExport(c, out)
}

// sendExport escribe un documento exportado como descarga adjunta.
func sendExport(c *fiber.Ctx, out *dto.ExportResponse) error {
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.Filename+`"`)
	return c.Send(out.Body)
}
