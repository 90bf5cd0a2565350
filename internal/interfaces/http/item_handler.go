package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/usecase"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// ItemHandler maneja las peticiones HTTP del catálogo de artículos.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar artículos del catálogo
// @Tags         items
// @Produce      json
// @Param        id         query  int     false  "Filtrar por id"
// @Param        categoria  query  string  false  "Filtrar por categoría"
// @Param        activo     query  bool    false  "Filtrar por activo"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var f repository.ItemFilter
	if id := c.QueryInt("id", 0); id > 0 {
		id64 := int64(id)
		f.ID = &id64
	}
	if cat := c.Query("categoria"); cat != "" && cat != "Todas" {
		f.Categoria = &cat
	}
	if raw := c.Query("activo"); raw != "" {
		activo := raw == "true" || raw == "1"
		f.Activo = &activo
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo (solo campos presentes)
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), int64(id), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar artículo y sus líneas de recuento históricas
// @Tags         items
// @Produce      json
// @Param        id  path  int  true  "ID del artículo"
// @Success      200  {object}  dto.ConfirmResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return missingID(c)
	}
	nombre, err := h.uc.Delete(c.Context(), int64(id))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.ConfirmResponse{
		Success: true,
		Message: fmt.Sprintf("Artículo %q eliminado junto a sus líneas de recuento", nombre),
	})
}
