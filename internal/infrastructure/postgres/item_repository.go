package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// COALESCE en los campos de texto opcionales: filas antiguas pueden traer NULL.
const itemColumns = `id, articulo, categoria, COALESCE(foto, ''), precio_unidad, cantidad_objetivo, COALESCE(unidad, ''), COALESCE(proveedor, ''), COALESCE(proveedor_url, ''), activo, created_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo y rellena ID y CreatedAt.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (articulo, categoria, foto, precio_unidad, cantidad_objetivo, unidad, proveedor, proveedor_url, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		item.Articulo, item.Categoria, item.Foto, item.PrecioUnidad, item.CantidadObjetivo,
		item.Unidad, item.Proveedor, item.ProveedorURL, item.Activo,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List lista artículos con filtros opcionales, ordenados por (categoria, articulo).
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var conds []string
	var args []any

	if f.ID != nil {
		args = append(args, *f.ID)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}
	if f.Categoria != nil {
		args = append(args, *f.Categoria)
		conds = append(conds, fmt.Sprintf("categoria = $%d", len(args)))
	}
	if f.Activo != nil {
		args = append(args, *f.Activo)
		conds = append(conds, fmt.Sprintf("activo = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY categoria ASC, articulo ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListActivos devuelve los artículos activos en el orden canónico del catálogo.
func (r *ItemRepo) ListActivos(ctx context.Context) ([]*entity.Item, error) {
	activo := true
	return r.List(ctx, repository.ItemFilter{Activo: &activo})
}

// Update actualiza un artículo existente (todos los campos editables).
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET articulo = $2, categoria = $3, foto = $4, precio_unidad = $5,
		    cantidad_objetivo = $6, unidad = $7, proveedor = $8, proveedor_url = $9, activo = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Articulo, item.Categoria, item.Foto, item.PrecioUnidad,
		item.CantidadObjetivo, item.Unidad, item.Proveedor, item.ProveedorURL, item.Activo,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update item %d: %w", item.ID, pgx.ErrNoRows)
	}
	return nil
}

// Delete elimina un artículo por ID. El borrado de sus líneas de recuento es una
// cascada explícita aparte (ver ItemUseCase.Delete).
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// DeleteAll vacía el catálogo completo (reset administrativo).
func (r *ItemRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("delete all items: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Articulo, &it.Categoria, &it.Foto, &it.PrecioUnidad,
		&it.CantidadObjetivo, &it.Unidad, &it.Proveedor, &it.ProveedorURL,
		&it.Activo, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
