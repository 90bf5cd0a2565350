package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// ReportUseCase casos de uso de los partes de stock de empleados. Un parte es
// inmutable: se crea, se consulta y como mucho se borra.
type ReportUseCase struct {
	repo     repository.ReportRepository
	itemRepo repository.ItemRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, itemRepo repository.ItemRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo, itemRepo: itemRepo}
}

// Create registra un parte nuevo. El artículo debe existir y estar activo; la
// categoría del parte debe coincidir con la del artículo. Nombre y precio se
// copian del catálogo en el momento del envío y el mes se deriva de la fecha
// actual del servidor.
func (uc *ReportUseCase) Create(ctx context.Context, in dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if in.ArticuloID <= 0 {
		return nil, fmt.Errorf("%w: articulo_id es requerido", domain.ErrInvalidInput)
	}
	if in.Cantidad == nil || *in.Cantidad < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser un número entero mayor que 0", domain.ErrInvalidInput)
	}

	item, err := uc.itemRepo.GetByID(ctx, in.ArticuloID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo no encontrado", domain.ErrNotFound)
	}
	if !item.Activo {
		return nil, fmt.Errorf("%w: el artículo no está activo", domain.ErrInvalidInput)
	}
	if in.Categoria != "" && in.Categoria != item.Categoria {
		return nil, fmt.Errorf("%w: la categoría no coincide con la del artículo", domain.ErrInvalidInput)
	}

	precio := item.PrecioUnidad
	if in.PrecioUnidad != nil {
		if in.PrecioUnidad.IsNegative() {
			return nil, fmt.Errorf("%w: el precio debe ser un número mayor o igual a 0", domain.ErrInvalidInput)
		}
		precio = *in.PrecioUnidad
	}

	ahora := time.Now()
	r := &entity.Report{
		Categoria:      item.Categoria,
		ArticuloID:     item.ID,
		ArticuloNombre: item.Articulo,
		PrecioUnidad:   precio,
		Cantidad:       *in.Cantidad,
		Costo:          precio.Mul(decimal.NewFromInt(int64(*in.Cantidad))).Round(2),
		FechaReporte:   ahora,
		Mes:            ahora.Format("2006-01"),
		Notas:          in.Notas,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	out := toReportResponse(r)
	return &out, nil
}

// GetByID devuelve un parte por id.
func (uc *ReportUseCase) GetByID(ctx context.Context, id int64) (*dto.ReportResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: reporte no encontrado", domain.ErrNotFound)
	}
	out := toReportResponse(r)
	return &out, nil
}

// List lista partes con filtros opcionales de mes y categoría. Si hay mes
// incluye el agregado mensual; siempre incluye el desglose por categoría.
func (uc *ReportUseCase) List(ctx context.Context, f repository.ReportFilter) (*dto.ReportListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	reports, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &dto.ReportListResponse{Reports: make([]dto.ReportResponse, 0, len(reports))}
	for _, r := range reports {
		out.Reports = append(out.Reports, toReportResponse(r))
	}

	if f.Mes != "" {
		stats, err := uc.repo.MonthlyStats(ctx, f.Mes, f.Categoria)
		if err != nil {
			return nil, err
		}
		if stats != nil {
			out.MonthlyStats = &dto.ReportStatsDTO{
				TotalCosto:    stats.TotalCosto,
				TotalReportes: stats.TotalReportes,
			}
		}
	}

	catStats, err := uc.repo.CategoryStats(ctx, f)
	if err != nil {
		return nil, err
	}
	out.CategoryStats = make([]dto.ReportStatsDTO, 0, len(catStats))
	for _, s := range catStats {
		out.CategoryStats = append(out.CategoryStats, dto.ReportStatsDTO{
			Categoria:     s.Categoria,
			TotalCosto:    s.TotalCosto,
			TotalReportes: s.TotalReportes,
		})
	}
	return out, nil
}

// Delete borra un parte y devuelve el parte borrado.
func (uc *ReportUseCase) Delete(ctx context.Context, id int64) (*dto.ReportResponse, error) {
	r, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: reporte no encontrado", domain.ErrNotFound)
	}
	out := toReportResponse(r)
	return &out, nil
}

var reportCSVHeaders = []string{
	"Categoría", "Artículo", "Cantidad", "Precio Unitario (€)",
	"Costo Total (€)", "Fecha Reporte", "Mes", "Notas",
}

// ExportCSV exporta los partes filtrados como CSV (histórico crudo, sin
// reconciliar). Sin resultados devuelve domain.ErrNothingToExport.
func (uc *ReportUseCase) ExportCSV(ctx context.Context, f repository.ReportFilter) (*dto.ExportResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 10000
	}
	reports, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("%w: no hay reportes para exportar", domain.ErrNothingToExport)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportCSVHeaders); err != nil {
		return nil, fmt.Errorf("escribir cabecera CSV: %w", err)
	}
	for _, r := range reports {
		row := []string{
			r.Categoria,
			r.ArticuloNombre,
			fmt.Sprintf("%d", r.Cantidad),
			r.PrecioUnidad.StringFixed(2),
			r.Costo.StringFixed(2),
			r.FechaReporte.Format("2006-01-02 15:04"),
			r.Mes,
			r.Notas,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("escribir fila CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("volcar CSV: %w", err)
	}

	filename := fmt.Sprintf("blossom-reportes-%s", time.Now().Format("20060102-150405"))
	if f.Mes != "" {
		filename += "-" + f.Mes
	}
	if f.Categoria != "" && f.Categoria != "Todas" {
		filename += "-" + f.Categoria
	}
	return &dto.ExportResponse{
		Filename:    filename + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

func toReportResponse(r *entity.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:             r.ID,
		Categoria:      r.Categoria,
		ArticuloID:     r.ArticuloID,
		ArticuloNombre: r.ArticuloNombre,
		PrecioUnidad:   r.PrecioUnidad,
		Cantidad:       r.Cantidad,
		Costo:          r.Costo,
		FechaReporte:   r.FechaReporte,
		Mes:            r.Mes,
		Notas:          r.Notas,
		CreatedAt:      r.CreatedAt,
	}
}
