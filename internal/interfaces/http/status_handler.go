package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nixnvs/blossomstock-web/internal/application/status"
)

// StatusHandler maneja el panel de estado de stock de un mes.
type StatusHandler struct {
	uc *status.StockStatusUseCase
}

// NewStatusHandler construye el handler.
func NewStatusHandler(uc *status.StockStatusUseCase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

// Get godoc
// @Summary      Estado de stock del recuento de un mes
// @Description  KPIs y desglose por categoría; mes sin recuento devuelve un resultado a cero.
// @Tags         status
// @Produce      json
// @Param        mes  query  string  true  "Mes YYYY-MM"
// @Success      200  {object}  dto.StockStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-status [get]
func (h *StatusHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Compute(c.Context(), c.Query("mes"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
