package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenRecuentoRequest entrada para abrir el recuento de un mes.
type OpenRecuentoRequest struct {
	Mes string `json:"mes"`
}

// UpdateRecuentoRequest cambio de estado del recuento (solo cierre).
type UpdateRecuentoRequest struct {
	Estado string `json:"estado"`
}

// EditLineaRequest edición de una línea: al menos un campo debe venir.
type EditLineaRequest struct {
	LineaID        int64   `json:"linea_id"`
	CantidadActual *int    `json:"cantidad_actual"`
	NotaLinea      *string `json:"nota_linea"`
}

// RecuentoResponse salida de un recuento.
type RecuentoResponse struct {
	ID            int64      `json:"id"`
	Mes           string     `json:"mes"`
	Estado        string     `json:"estado"`
	FechaCreacion time.Time  `json:"fecha_creacion"`
	FechaCierre   *time.Time `json:"fecha_cierre"`
}

// OpenRecuentoResponse recuento recién abierto con el número de líneas creadas.
type OpenRecuentoResponse struct {
	RecuentoResponse
	LineasCount int `json:"lineas_count"`
}

// LineaResponse salida de una línea de recuento.
type LineaResponse struct {
	ID               int64           `json:"id"`
	RecuentoID       int64           `json:"recuento_id"`
	ItemID           int64           `json:"item_id,omitempty"`
	ArticuloNombre   string          `json:"articulo_nombre"`
	Categoria        string          `json:"categoria"`
	PrecioUnidad     decimal.Decimal `json:"precio_unidad"`
	CantidadObjetivo int             `json:"cantidad_objetivo"`
	CantidadActual   int             `json:"cantidad_actual"`
	NotaLinea        string          `json:"nota_linea,omitempty"`
	Foto             string          `json:"foto,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// RecuentoLineasResponse recuento con sus líneas en el orden canónico.
type RecuentoLineasResponse struct {
	Recuento RecuentoResponse `json:"recuento"`
	Lineas   []LineaResponse  `json:"lineas"`
}
