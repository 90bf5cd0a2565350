package dto

import "github.com/shopspring/decimal"

// LineaCompraDTO línea de compra del reporte de faltantes.
type LineaCompraDTO struct {
	ID               int64           `json:"id"`
	ArticuloNombre   string          `json:"articulo_nombre"`
	Categoria        string          `json:"categoria"`
	PrecioUnidad     decimal.Decimal `json:"precio_unidad"`
	CantidadObjetivo int             `json:"cantidad_objetivo"`
	CantidadActual   int             `json:"cantidad_actual"`
	AComprar         int             `json:"a_comprar"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	NotaLinea        string          `json:"nota_linea,omitempty"`
	Proveedor        string          `json:"proveedor,omitempty"`
	ProveedorURL     string          `json:"proveedor_url,omitempty"`
}

// CategoriaCompraDTO grupo de líneas de una categoría con su total.
type CategoriaCompraDTO struct {
	Categoria string           `json:"categoria"`
	Lineas    []LineaCompraDTO `json:"lineas"`
	Total     decimal.Decimal  `json:"total"`
}

// TotalCategoriaDTO fila del resumen por categoría.
type TotalCategoriaDTO struct {
	Categoria      string          `json:"categoria"`
	ItemsAComprar  int             `json:"items_a_comprar"`
	TotalCategoria decimal.Decimal `json:"total_categoria"`
}

// ResumenDTO panel de resumen del reporte.
type ResumenDTO struct {
	TotalItems        int                 `json:"totalItems"`
	TotalCategorias   int                 `json:"totalCategorias"`
	TotalPorCategoria []TotalCategoriaDTO `json:"totalPorCategoria"`
}

// ReporteResponse reporte de faltantes agrupado por categoría.
type ReporteResponse struct {
	Recuento     RecuentoResponse     `json:"recuento"`
	Categorias   []CategoriaCompraDTO `json:"categorias"`
	TotalGeneral decimal.Decimal      `json:"totalGeneral"`
	Resumen      ResumenDTO           `json:"resumen"`
}

// ReporteActionRequest acción sobre el reporte de un recuento cerrado.
type ReporteActionRequest struct {
	Action   string `json:"action"`    // export_csv | generate_summary | export_pdf
	ViewMode string `json:"view_mode"` // categoria (default) | proveedor
}

// SummaryResponse resumen en HTML más su versión en texto plano.
type SummaryResponse struct {
	Summary   string `json:"summary"`
	PlainText string `json:"plainText"`
}

// ExportResponse documento exportado con su nombre sugerido.
type ExportResponse struct {
	Filename    string
	ContentType string
	Body        []byte
}
