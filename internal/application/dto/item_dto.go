package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo del catálogo.
type CreateItemRequest struct {
	Articulo         string           `json:"articulo"`
	Categoria        string           `json:"categoria"`
	Foto             string           `json:"foto"`
	PrecioUnidad     *decimal.Decimal `json:"precio_unidad"`
	CantidadObjetivo *int             `json:"cantidad_objetivo"`
	Unidad           string           `json:"unidad"`
	Proveedor        string           `json:"proveedor"`
	ProveedorURL     string           `json:"proveedor_url"`
	Activo           *bool            `json:"activo"`
}

// UpdateItemRequest entrada para actualizar un artículo: solo se aplican los
// campos presentes (punteros como mapa de presencia).
type UpdateItemRequest struct {
	Articulo         *string          `json:"articulo"`
	Categoria        *string          `json:"categoria"`
	Foto             *string          `json:"foto"`
	PrecioUnidad     *decimal.Decimal `json:"precio_unidad"`
	CantidadObjetivo *int             `json:"cantidad_objetivo"`
	Unidad           *string          `json:"unidad"`
	Proveedor        *string          `json:"proveedor"`
	ProveedorURL     *string          `json:"proveedor_url"`
	Activo           *bool            `json:"activo"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID               int64           `json:"id"`
	Articulo         string          `json:"articulo"`
	Categoria        string          `json:"categoria"`
	Foto             string          `json:"foto,omitempty"`
	PrecioUnidad     decimal.Decimal `json:"precio_unidad"`
	CantidadObjetivo int             `json:"cantidad_objetivo"`
	Unidad           string          `json:"unidad,omitempty"`
	Proveedor        string          `json:"proveedor,omitempty"`
	ProveedorURL     string          `json:"proveedor_url,omitempty"`
	Activo           bool            `json:"activo"`
	CreatedAt        time.Time       `json:"created_at"`
}
