package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReportRequest entrada del parte de stock de un empleado.
type CreateReportRequest struct {
	Categoria      string           `json:"categoria"`
	ArticuloID     int64            `json:"articulo_id"`
	ArticuloNombre string           `json:"articulo_nombre"`
	PrecioUnidad   *decimal.Decimal `json:"precio_unidad"`
	Cantidad       *int             `json:"cantidad"`
	Notas          string           `json:"notas"`
}

// ReportResponse salida de un parte.
type ReportResponse struct {
	ID             int64           `json:"id"`
	Categoria      string          `json:"categoria"`
	ArticuloID     int64           `json:"articulo_id"`
	ArticuloNombre string          `json:"articulo_nombre"`
	PrecioUnidad   decimal.Decimal `json:"precio_unidad"`
	Cantidad       int             `json:"cantidad"`
	Costo          decimal.Decimal `json:"costo"`
	FechaReporte   time.Time       `json:"fecha_reporte"`
	Mes            string          `json:"mes"`
	Notas          string          `json:"notas,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ReportStatsDTO agregado de costo por categoría o por mes.
type ReportStatsDTO struct {
	Categoria     string          `json:"categoria,omitempty"`
	TotalCosto    decimal.Decimal `json:"total_costo"`
	TotalReportes int             `json:"total_reportes"`
}

// ReportListResponse listado de partes con estadísticas.
type ReportListResponse struct {
	Reports       []ReportResponse `json:"reports"`
	MonthlyStats  *ReportStatsDTO  `json:"monthlyStats"`
	CategoryStats []ReportStatsDTO `json:"categoryStats"`
}
