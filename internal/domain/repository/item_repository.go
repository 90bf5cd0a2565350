package repository

import (
	"context"

	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
)

// ItemFilter filtros opcionales para listar artículos.
type ItemFilter struct {
	ID        *int64
	Categoria *string
	Activo    *bool
}

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// List devuelve artículos ordenados por (categoria ASC, articulo ASC).
	List(ctx context.Context, f ItemFilter) ([]*entity.Item, error)
	// ListActivos devuelve los artículos activos en el mismo orden canónico.
	ListActivos(ctx context.Context) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
