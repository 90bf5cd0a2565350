package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

var _ repository.RecuentoRepository = (*RecuentoRepo)(nil)

const recuentoColumns = `id, mes, estado, fecha_creacion, fecha_cierre`

const lineaColumns = `id, recuento_id, COALESCE(item_id, 0), articulo_nombre, categoria, precio_unidad, cantidad_objetivo, cantidad_actual, COALESCE(nota_linea, ''), created_at, updated_at`

// RecuentoRepo implementación del puerto RecuentoRepository sobre PostgreSQL (usable con pool o tx).
type RecuentoRepo struct {
	q Querier
}

// NewRecuentoRepository construye el adaptador de recuentos. Pasar pool o tx (Querier).
func NewRecuentoRepository(q Querier) *RecuentoRepo {
	return &RecuentoRepo{q: q}
}

// Create inserta un recuento en Borrador. La unicidad del mes la impone la
// constraint UNIQUE de la tabla: si dos aperturas compiten, la perdedora recibe
// domain.ErrDuplicate en lugar de pisar a la ganadora.
func (r *RecuentoRepo) Create(ctx context.Context, mes string) (*entity.Recuento, error) {
	query := `
		INSERT INTO recuentos (mes, estado)
		VALUES ($1, $2)
		RETURNING ` + recuentoColumns
	rec, err := scanRecuento(r.q.QueryRow(ctx, query, mes, entity.EstadoBorrador))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert recuento: %w", err)
	}
	return rec, nil
}

// GetByID obtiene un recuento por ID. Devuelve nil si no existe.
func (r *RecuentoRepo) GetByID(ctx context.Context, id int64) (*entity.Recuento, error) {
	query := `SELECT ` + recuentoColumns + ` FROM recuentos WHERE id = $1`
	rec, err := scanRecuento(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recuento: %w", err)
	}
	return rec, nil
}

// List devuelve todos los recuentos, mes más reciente primero.
func (r *RecuentoRepo) List(ctx context.Context) ([]*entity.Recuento, error) {
	query := `SELECT ` + recuentoColumns + ` FROM recuentos ORDER BY mes DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recuentos: %w", err)
	}
	defer rows.Close()
	return collectRecuentos(rows)
}

// ListCerrados devuelve los recuentos cerrados, cierre más reciente primero.
func (r *RecuentoRepo) ListCerrados(ctx context.Context) ([]*entity.Recuento, error) {
	query := `SELECT ` + recuentoColumns + ` FROM recuentos WHERE estado = $1 ORDER BY fecha_cierre DESC`
	rows, err := r.q.Query(ctx, query, entity.EstadoCerrado)
	if err != nil {
		return nil, fmt.Errorf("list recuentos cerrados: %w", err)
	}
	defer rows.Close()
	return collectRecuentos(rows)
}

// GetByMes devuelve el recuento del mes. Ante datos inconsistentes (más de uno)
// prefiere Cerrado sobre Borrador y luego el de creación más reciente.
func (r *RecuentoRepo) GetByMes(ctx context.Context, mes string) (*entity.Recuento, error) {
	query := `
		SELECT ` + recuentoColumns + `
		FROM recuentos
		WHERE mes = $1
		ORDER BY CASE WHEN estado = 'Cerrado' THEN 1 ELSE 2 END, fecha_creacion DESC
		LIMIT 1`
	rec, err := scanRecuento(r.q.QueryRow(ctx, query, mes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recuento por mes: %w", err)
	}
	return rec, nil
}

// Cerrar pasa el recuento a Cerrado con un compare-and-set: el UPDATE solo
// aplica si el estado sigue en Borrador, evitando lost updates entre un cierre
// y una edición concurrentes. Devuelve false si no había fila en Borrador.
func (r *RecuentoRepo) Cerrar(ctx context.Context, id int64) (*entity.Recuento, bool, error) {
	query := `
		UPDATE recuentos
		SET estado = $2, fecha_cierre = CURRENT_TIMESTAMP
		WHERE id = $1 AND estado = $3
		RETURNING ` + recuentoColumns
	rec, err := scanRecuento(r.q.QueryRow(ctx, query, id, entity.EstadoCerrado, entity.EstadoBorrador))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cerrar recuento: %w", err)
	}
	return rec, true, nil
}

// Delete elimina el recuento; sus líneas caen con el ON DELETE CASCADE del FK,
// en la misma transacción implícita del DELETE.
func (r *RecuentoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM recuentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recuento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BulkInsertLineas inserta las líneas iniciales vía COPY (una sola operación,
// sin inserciones parciales observables dentro de la tx del caso de uso).
func (r *RecuentoRepo) BulkInsertLineas(ctx context.Context, lineas []*entity.RecuentoLinea) error {
	if len(lineas) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(lineas))
	for _, l := range lineas {
		rows = append(rows, []any{
			l.RecuentoID, l.ItemID, l.ArticuloNombre, l.Categoria,
			l.PrecioUnidad, l.CantidadObjetivo, l.CantidadActual, nullIfEmpty(l.NotaLinea),
		})
	}
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"recuento_lineas"},
		[]string{"recuento_id", "item_id", "articulo_nombre", "categoria", "precio_unidad", "cantidad_objetivo", "cantidad_actual", "nota_linea"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert lineas: %w", err)
	}
	return nil
}

// GetLinea obtiene una línea verificando que pertenezca al recuento. Nil si no existe.
func (r *RecuentoRepo) GetLinea(ctx context.Context, recuentoID, lineaID int64) (*entity.RecuentoLinea, error) {
	query := `SELECT ` + lineaColumns + ` FROM recuento_lineas WHERE id = $1 AND recuento_id = $2`
	l, err := scanLinea(r.q.QueryRow(ctx, query, lineaID, recuentoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get linea: %w", err)
	}
	return l, nil
}

// Lineas devuelve las líneas del recuento con la foto actual del artículo
// (LEFT JOIN: la línea sobrevive al borrado del artículo).
func (r *RecuentoRepo) Lineas(ctx context.Context, recuentoID int64) ([]repository.LineaConFoto, error) {
	const query = `
		SELECT
		    rl.id, rl.recuento_id, COALESCE(rl.item_id, 0), rl.articulo_nombre, rl.categoria,
		    rl.precio_unidad, rl.cantidad_objetivo, rl.cantidad_actual,
		    COALESCE(rl.nota_linea, ''), rl.created_at, rl.updated_at,
		    COALESCE(i.foto, '')
		FROM recuento_lineas rl
		LEFT JOIN items i ON rl.item_id = i.id
		WHERE rl.recuento_id = $1
		ORDER BY rl.categoria ASC, rl.articulo_nombre ASC`

	rows, err := r.q.Query(ctx, query, recuentoID)
	if err != nil {
		return nil, fmt.Errorf("list lineas: %w", err)
	}
	defer rows.Close()

	var list []repository.LineaConFoto
	for rows.Next() {
		var l repository.LineaConFoto
		if err := rows.Scan(
			&l.ID, &l.RecuentoID, &l.ItemID, &l.ArticuloNombre, &l.Categoria,
			&l.PrecioUnidad, &l.CantidadObjetivo, &l.CantidadActual,
			&l.NotaLinea, &l.CreatedAt, &l.UpdatedAt, &l.Foto,
		); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateLinea aplica solo los campos presentes del patch (mapa de presencia,
// nunca concatenación de valores) y estampa updated_at.
func (r *RecuentoRepo) UpdateLinea(ctx context.Context, recuentoID, lineaID int64, patch repository.LineaPatch) (*entity.RecuentoLinea, error) {
	var set []string
	var args []any

	if patch.CantidadActual != nil {
		args = append(args, *patch.CantidadActual)
		set = append(set, fmt.Sprintf("cantidad_actual = $%d", len(args)))
	}
	if patch.NotaLinea != nil {
		args = append(args, *patch.NotaLinea)
		set = append(set, fmt.Sprintf("nota_linea = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil, domain.ErrInvalidInput
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, lineaID)
	idPos := len(args)
	args = append(args, recuentoID)
	recPos := len(args)

	query := fmt.Sprintf(`
		UPDATE recuento_lineas
		SET %s
		WHERE id = $%d AND recuento_id = $%d
		RETURNING `+lineaColumns, strings.Join(set, ", "), idPos, recPos)

	l, err := scanLinea(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update linea: %w", err)
	}
	return l, nil
}

// LineasCompra devuelve solo las líneas con faltante > 0 junto al proveedor del
// artículo vivo, en el orden canónico (categoria, articulo).
func (r *RecuentoRepo) LineasCompra(ctx context.Context, recuentoID int64) ([]repository.LineaCompra, error) {
	const query = `
		SELECT
		    rl.id, rl.recuento_id, COALESCE(rl.item_id, 0), rl.articulo_nombre, rl.categoria,
		    rl.precio_unidad, rl.cantidad_objetivo, rl.cantidad_actual,
		    COALESCE(rl.nota_linea, ''), rl.created_at, rl.updated_at,
		    COALESCE(i.proveedor, ''), COALESCE(i.proveedor_url, '')
		FROM recuento_lineas rl
		LEFT JOIN items i ON i.id = rl.item_id
		WHERE rl.recuento_id = $1
		  AND GREATEST(rl.cantidad_objetivo - rl.cantidad_actual, 0) > 0
		ORDER BY rl.categoria ASC, rl.articulo_nombre ASC`

	rows, err := r.q.Query(ctx, query, recuentoID)
	if err != nil {
		return nil, fmt.Errorf("list lineas compra: %w", err)
	}
	defer rows.Close()

	var list []repository.LineaCompra
	for rows.Next() {
		var l repository.LineaCompra
		if err := rows.Scan(
			&l.ID, &l.RecuentoID, &l.ItemID, &l.ArticuloNombre, &l.Categoria,
			&l.PrecioUnidad, &l.CantidadObjetivo, &l.CantidadActual,
			&l.NotaLinea, &l.CreatedAt, &l.UpdatedAt, &l.Proveedor, &l.ProveedorURL,
		); err != nil {
			return nil, fmt.Errorf("scan linea compra: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// DeleteLineasByItem borra las líneas históricas de un artículo (cascada
// explícita del borrado de Item, distinta de la cascada recuento→líneas).
func (r *RecuentoRepo) DeleteLineasByItem(ctx context.Context, itemID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM recuento_lineas WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete lineas por item: %w", err)
	}
	return nil
}

// DeleteAll borra todas las líneas y todos los recuentos (reset administrativo).
// Borrado explícito en dos pasos aunque el FK tenga CASCADE, para que el orden
// quede a la vista en la transacción del reset.
func (r *RecuentoRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recuento_lineas`); err != nil {
		return fmt.Errorf("delete all lineas: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM recuentos`); err != nil {
		return fmt.Errorf("delete all recuentos: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanRecuento(row pgx.Row) (*entity.Recuento, error) {
	var rec entity.Recuento
	if err := row.Scan(&rec.ID, &rec.Mes, &rec.Estado, &rec.FechaCreacion, &rec.FechaCierre); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanLinea(row pgx.Row) (*entity.RecuentoLinea, error) {
	var l entity.RecuentoLinea
	if err := row.Scan(
		&l.ID, &l.RecuentoID, &l.ItemID, &l.ArticuloNombre, &l.Categoria,
		&l.PrecioUnidad, &l.CantidadObjetivo, &l.CantidadActual,
		&l.NotaLinea, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func collectRecuentos(rows pgx.Rows) ([]*entity.Recuento, error) {
	var list []*entity.Recuento
	for rows.Next() {
		rec, err := scanRecuento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recuento: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
