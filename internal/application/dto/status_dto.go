package dto

// KPIsDTO indicadores del estado de stock del mes.
type KPIsDTO struct {
	PorcentajeCompletos   int    `json:"porcentajeCompletos"`
	ArticulosConFaltantes int    `json:"articulosConFaltantes"`
	CategoriaMasAfectada  string `json:"categoriaMasAfectada,omitempty"`
	TotalArticulos        int    `json:"totalArticulos"`
}

// ArticuloStatusDTO progreso de un artículo dentro de su categoría.
// Estado: verde (100%), amarillo (>= 70% del objetivo), rojo (< 70%).
type ArticuloStatusDTO struct {
	ID               int64  `json:"id"`
	Nombre           string `json:"nombre"`
	CantidadActual   int    `json:"cantidadActual"`
	CantidadObjetivo int    `json:"cantidadObjetivo"`
	Porcentaje       int    `json:"porcentaje"`
	Estado           string `json:"estado"`
	Nota             string `json:"nota,omitempty"`
}

// CategoriaStatusDTO progreso agregado de una categoría.
type CategoriaStatusDTO struct {
	Nombre             string              `json:"nombre"`
	TotalActual        int                 `json:"totalActual"`
	TotalObjetivo      int                 `json:"totalObjetivo"`
	PorcentajeProgreso int                 `json:"porcentajeProgreso"`
	Articulos          []ArticuloStatusDTO `json:"articulos"`
}

// StockStatusResponse estado completo de stock de un mes.
type StockStatusResponse struct {
	Mes        string               `json:"mes"`
	Recuento   *RecuentoResponse    `json:"recuento"`
	KPIs       KPIsDTO              `json:"kpis"`
	Categorias []CategoriaStatusDTO `json:"categorias"`
}
