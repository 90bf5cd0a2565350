package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/usecase"
)

// AdminHandler maneja las operaciones administrativas destructivas.
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

type resetRequest struct {
	Confirmacion string `json:"confirmacion"`
}

// Reset godoc
// @Summary      Borrar todos los datos de la aplicación
// @Description  Exige confirmacion="BORRAR TODO". Borra líneas, recuentos, partes y artículos en una transacción.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  resetRequest  true  "Frase de confirmación"
// @Success      200   {object}  dto.ConfirmResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/reset-database [post]
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	var in resetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Reset(c.Context(), in.Confirmacion); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.ConfirmResponse{Success: true, Message: "Todos los datos han sido eliminados"})
}
