package usecase

import (
	"context"
	"fmt"

	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para el catálogo de artículos.
type ItemUseCase struct {
	repo repository.ItemRepository
	tx   recuento.TxRunner
}

// NewItemUseCase construye el caso de uso. tx se usa para la cascada explícita
// artículo → líneas de recuento del borrado.
func NewItemUseCase(repo repository.ItemRepository, tx recuento.TxRunner) *ItemUseCase {
	return &ItemUseCase{repo: repo, tx: tx}
}

// List lista artículos con filtros opcionales en el orden canónico del catálogo.
func (uc *ItemUseCase) List(ctx context.Context, f repository.ItemFilter) ([]dto.ItemResponse, error) {
	if f.Categoria != nil && !entity.CategoriaValida(*f.Categoria) {
		return nil, fmt.Errorf("%w: categoría no válida", domain.ErrInvalidInput)
	}
	items, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// Create crea un artículo nuevo validando categoría, precio y objetivo.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Articulo == "" || in.Categoria == "" || in.PrecioUnidad == nil || in.CantidadObjetivo == nil {
		return nil, fmt.Errorf("%w: faltan campos requeridos: articulo, categoria, precio_unidad, cantidad_objetivo", domain.ErrInvalidInput)
	}
	if !entity.CategoriaValida(in.Categoria) {
		return nil, fmt.Errorf("%w: categoría no válida", domain.ErrInvalidInput)
	}
	if in.PrecioUnidad.IsNegative() {
		return nil, fmt.Errorf("%w: el precio debe ser un número mayor o igual a 0", domain.ErrInvalidInput)
	}
	if *in.CantidadObjetivo < 0 {
		return nil, fmt.Errorf("%w: la cantidad objetivo debe ser un número mayor o igual a 0", domain.ErrInvalidInput)
	}

	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	item := &entity.Item{
		Articulo:         in.Articulo,
		Categoria:        in.Categoria,
		Foto:             in.Foto,
		PrecioUnidad:     *in.PrecioUnidad,
		CantidadObjetivo: *in.CantidadObjetivo,
		Unidad:           in.Unidad,
		Proveedor:        in.Proveedor,
		ProveedorURL:     in.ProveedorURL,
		Activo:           activo,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	return &out, nil
}

// Update aplica un patch al artículo: solo los campos presentes, con las mismas
// validaciones que la creación.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo no encontrado", domain.ErrNotFound)
	}

	if in.Articulo == nil && in.Categoria == nil && in.Foto == nil && in.PrecioUnidad == nil &&
		in.CantidadObjetivo == nil && in.Unidad == nil && in.Proveedor == nil &&
		in.ProveedorURL == nil && in.Activo == nil {
		return nil, fmt.Errorf("%w: no hay campos para actualizar", domain.ErrInvalidInput)
	}

	if in.Articulo != nil {
		item.Articulo = *in.Articulo
	}
	if in.Categoria != nil {
		if !entity.CategoriaValida(*in.Categoria) {
			return nil, fmt.Errorf("%w: categoría no válida", domain.ErrInvalidInput)
		}
		item.Categoria = *in.Categoria
	}
	if in.Foto != nil {
		item.Foto = *in.Foto
	}
	if in.PrecioUnidad != nil {
		if in.PrecioUnidad.IsNegative() {
			return nil, fmt.Errorf("%w: el precio debe ser un número mayor o igual a 0", domain.ErrInvalidInput)
		}
		item.PrecioUnidad = *in.PrecioUnidad
	}
	if in.CantidadObjetivo != nil {
		if *in.CantidadObjetivo < 0 {
			return nil, fmt.Errorf("%w: la cantidad objetivo debe ser un número mayor o igual a 0", domain.ErrInvalidInput)
		}
		item.CantidadObjetivo = *in.CantidadObjetivo
	}
	if in.Unidad != nil {
		item.Unidad = *in.Unidad
	}
	if in.Proveedor != nil {
		item.Proveedor = *in.Proveedor
	}
	if in.ProveedorURL != nil {
		item.ProveedorURL = *in.ProveedorURL
	}
	if in.Activo != nil {
		item.Activo = *in.Activo
	}

	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	return &out, nil
}

// Delete elimina el artículo y sus líneas de recuento históricas en una sola
// transacción (cascada explícita, distinta de la cascada recuento → líneas).
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) (string, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", fmt.Errorf("%w: artículo no encontrado", domain.ErrNotFound)
	}

	err = uc.tx.Run(ctx, func(
		recuentoRepo repository.RecuentoRepository,
		itemRepo repository.ItemRepository,
		_ repository.ReportRepository,
	) error {
		if err := recuentoRepo.DeleteLineasByItem(ctx, id); err != nil {
			return err
		}
		return itemRepo.Delete(ctx, id)
	})
	if err != nil {
		return "", err
	}
	return item.Articulo, nil
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:               it.ID,
		Articulo:         it.Articulo,
		Categoria:        it.Categoria,
		Foto:             it.Foto,
		PrecioUnidad:     it.PrecioUnidad,
		CantidadObjetivo: it.CantidadObjetivo,
		Unidad:           it.Unidad,
		Proveedor:        it.Proveedor,
		ProveedorURL:     it.ProveedorURL,
		Activo:           it.Activo,
		CreatedAt:        it.CreatedAt,
	}
}
