package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
)

// RecuentoHandler maneja las peticiones HTTP del ciclo de vida de un recuento.
type RecuentoHandler struct {
	open      *recuento.OpenUseCase
	lifecycle *recuento.LifecycleUseCase
}

// NewRecuentoHandler construye el handler.
func NewRecuentoHandler(open *recuento.OpenUseCase, lifecycle *recuento.LifecycleUseCase) *RecuentoHandler {
	return &RecuentoHandler{open: open, lifecycle: lifecycle}
}

// Open godoc
// @Summary      Abrir el recuento de un mes
// @Description  Congela el catálogo activo en líneas precargadas con el último parte de cada artículo.
// @Tags         recuentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenRecuentoRequest  true  "Mes YYYY-MM"
// @Success      201   {object}  dto.OpenRecuentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recuentos [post]
func (h *RecuentoHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenRecuentoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.open.Open(c.Context(), in.Mes)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar recuentos
// @Tags         recuentos
// @Produce      json
// @Param        estado  query  string  false  "cerrado para solo cerrados"
// @Success      200  {array}  dto.RecuentoResponse
// @Router       /api/recuentos [get]
func (h *RecuentoHandler) List(c *fiber.Ctx) error {
	var (
		out []dto.RecuentoResponse
		err error
	)
	if c.Query("estado") == "cerrado" {
		out, err = h.lifecycle.ListCerrados(c.Context())
	} else {
		out, err = h.lifecycle.List(c.Context())
	}
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ListCerrados godoc
// @Summary      Listar solo los recuentos cerrados
// @Tags         recuentos
// @Produce      json
// @Success      200  {array}  dto.RecuentoResponse
// @Router       /api/recuentos/cerrados [get]
func (h *RecuentoHandler) ListCerrados(c *fiber.Ctx) error {
	out, err := h.lifecycle.ListCerrados(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// UpdateEstado godoc
// @Summary      Cambiar el estado de un recuento (cierre)
// @Description  El único tránsito legal es Borrador → Cerrado; el cierre es irreversible.
// @Tags         recuentos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del recuento"
// @Param        body  body  dto.UpdateRecuentoRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.RecuentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recuentos/{id} [put]
func (h *RecuentoHandler) UpdateEstado(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	var in dto.UpdateRecuentoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.lifecycle.UpdateEstado(c.Context(), int64(id), in.Estado)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar un recuento y todas sus líneas
// @Tags         recuentos
// @Produce      json
// @Param        id  path  int  true  "ID del recuento"
// @Success      200  {object}  dto.ConfirmResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recuentos/{id} [delete]
func (h *RecuentoHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	if err := h.lifecycle.Delete(c.Context(), int64(id)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.ConfirmResponse{Success: true, Message: "Recuento eliminado"})
}

// Lines godoc
// @Summary      Listar las líneas de un recuento
// @Tags         recuentos
// @Produce      json
// @Param        id  path  int  true  "ID del recuento"
// @Success      200  {object}  dto.RecuentoLineasResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recuentos/{id}/lineas [get]
func (h *RecuentoHandler) Lines(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	out, err := h.lifecycle.Lines(c.Context(), int64(id))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// EditLine godoc
// @Summary      Editar una línea (solo en Borrador)
// @Tags         recuentos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del recuento"
// @Param        body  body  dto.EditLineaRequest  true  "Cantidad y/o nota"
// @Success      200   {object}  dto.LineaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recuentos/{id}/lineas [put]
func (h *RecuentoHandler) EditLine(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	var in dto.EditLineaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.LineaID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "linea_id es requerido"})
	}
	out, err := h.lifecycle.EditLine(c.Context(), int64(id), in.LineaID, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
