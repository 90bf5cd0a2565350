package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

const reportColumns = `id, categoria, articulo_id, articulo_nombre, precio_unidad, cantidad, costo, fecha_reporte, mes, COALESCE(notas, ''), created_at`

// ReportRepo implementación del puerto ReportRepository sobre PostgreSQL (usable con pool o tx).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de partes de empleados. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste un parte nuevo y rellena ID y CreatedAt. Los partes son inmutables.
func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	query := `
		INSERT INTO reports (categoria, articulo_id, articulo_nombre, precio_unidad, cantidad, costo, fecha_reporte, mes, notas)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		rep.Categoria, rep.ArticuloID, rep.ArticuloNombre, rep.PrecioUnidad,
		rep.Cantidad, rep.Costo, rep.FechaReporte, rep.Mes, rep.Notas,
	).Scan(&rep.ID, &rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID obtiene un parte por ID. Devuelve nil si no existe.
func (r *ReportRepo) GetByID(ctx context.Context, id int64) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	rep, err := scanReport(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

// List lista partes con filtros de mes y categoría, más recientes primero.
func (r *ReportRepo) List(ctx context.Context, f repository.ReportFilter) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports`
	conds, args := reportConds(f)
	query += conds
	query += " ORDER BY fecha_reporte DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

// UltimosPorArticulo selecciona el parte autoritativo de cada artículo del mes.
// El desempate ante fechas idénticas es el id más alto (orden de inserción), así
// el resultado es determinista y lo decide el store, no el orden de iteración.
func (r *ReportRepo) UltimosPorArticulo(ctx context.Context, mes string) ([]repository.UltimoReporte, error) {
	const query = `
	WITH latest_reports AS (
	    SELECT
	        articulo_id,
	        cantidad,
	        COALESCE(notas, '') AS notas,
	        ROW_NUMBER() OVER (
	            PARTITION BY articulo_id
	            ORDER BY fecha_reporte DESC, id DESC
	        ) AS rn
	    FROM reports
	    WHERE mes = $1
	)
	SELECT articulo_id, cantidad, notas
	FROM latest_reports
	WHERE rn = 1`

	rows, err := r.q.Query(ctx, query, mes)
	if err != nil {
		return nil, fmt.Errorf("latest reports: %w", err)
	}
	defer rows.Close()

	var list []repository.UltimoReporte
	for rows.Next() {
		var u repository.UltimoReporte
		if err := rows.Scan(&u.ArticuloID, &u.Cantidad, &u.Notas); err != nil {
			return nil, fmt.Errorf("scan latest report: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// MonthlyStats devuelve costo y número de partes del mes (filtrable por categoría).
func (r *ReportRepo) MonthlyStats(ctx context.Context, mes, categoria string) (*repository.ReportStats, error) {
	query := `SELECT COALESCE(SUM(costo), 0), COUNT(*) FROM reports WHERE mes = $1`
	args := []any{mes}
	if categoria != "" && categoria != "Todas" {
		args = append(args, categoria)
		query += " AND categoria = $2"
	}
	var s repository.ReportStats
	if err := r.q.QueryRow(ctx, query, args...).Scan(&s.TotalCosto, &s.TotalReportes); err != nil {
		return nil, fmt.Errorf("monthly report stats: %w", err)
	}
	return &s, nil
}

// CategoryStats agrupa costo y número de partes por categoría, mayor costo primero.
func (r *ReportRepo) CategoryStats(ctx context.Context, f repository.ReportFilter) ([]repository.ReportStats, error) {
	query := `SELECT categoria, SUM(costo), COUNT(*) FROM reports`
	conds, args := reportConds(f)
	query += conds
	query += " GROUP BY categoria ORDER BY SUM(costo) DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category report stats: %w", err)
	}
	defer rows.Close()

	var list []repository.ReportStats
	for rows.Next() {
		var s repository.ReportStats
		if err := rows.Scan(&s.Categoria, &s.TotalCosto, &s.TotalReportes); err != nil {
			return nil, fmt.Errorf("scan report stats: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete borra un parte y devuelve el registro borrado; nil si no existía.
func (r *ReportRepo) Delete(ctx context.Context, id int64) (*entity.Report, error) {
	query := `DELETE FROM reports WHERE id = $1 RETURNING ` + reportColumns
	rep, err := scanReport(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete report: %w", err)
	}
	return rep, nil
}

// DeleteAll borra el histórico completo de partes (reset administrativo).
func (r *ReportRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM reports`); err != nil {
		return fmt.Errorf("delete all reports: %w", err)
	}
	return nil
}

func reportConds(f repository.ReportFilter) (string, []any) {
	var conds string
	var args []any
	if f.Mes != "" {
		args = append(args, f.Mes)
		conds = fmt.Sprintf(" WHERE mes = $%d", len(args))
	}
	if f.Categoria != "" && f.Categoria != "Todas" {
		args = append(args, f.Categoria)
		kw := " WHERE"
		if conds != "" {
			kw = " AND"
		}
		conds += fmt.Sprintf("%s categoria = $%d", kw, len(args))
	}
	return conds, args
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var rep entity.Report
	err := row.Scan(
		&rep.ID, &rep.Categoria, &rep.ArticuloID, &rep.ArticuloNombre, &rep.PrecioUnidad,
		&rep.Cantidad, &rep.Costo, &rep.FechaReporte, &rep.Mes, &rep.Notas, &rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
