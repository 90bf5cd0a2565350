package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
)

// ReportFilter filtros para listar partes de empleados.
type ReportFilter struct {
	Mes       string // vacío = todos los meses
	Categoria string // vacío o "Todas" = todas
	Limit     int
}

// UltimoReporte es el parte más reciente de un artículo en un mes: el único
// autoritativo para la reconciliación. Empates de fecha se resuelven por id
// más alto (orden de inserción).
type UltimoReporte struct {
	ArticuloID int64
	Cantidad   int
	Notas      string
}

// ReportStats agregados de costo por categoría o por mes.
type ReportStats struct {
	Categoria     string
	TotalCosto    decimal.Decimal
	TotalReportes int
}

// ReportRepository define el puerto de persistencia para Report.
type ReportRepository interface {
	Create(ctx context.Context, r *entity.Report) error
	GetByID(ctx context.Context, id int64) (*entity.Report, error)
	List(ctx context.Context, f ReportFilter) ([]*entity.Report, error)
	// UltimosPorArticulo devuelve, para cada artículo con partes en el mes,
	// el más reciente (fecha_reporte DESC, id DESC).
	UltimosPorArticulo(ctx context.Context, mes string) ([]UltimoReporte, error)
	MonthlyStats(ctx context.Context, mes, categoria string) (*ReportStats, error)
	CategoryStats(ctx context.Context, f ReportFilter) ([]ReportStats, error)
	Delete(ctx context.Context, id int64) (*entity.Report, error)
	DeleteAll(ctx context.Context) error
}
