package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report es el parte de stock enviado por un empleado: la cantidad que ENCONTRÓ
// de un artículo en un mes dado. Copia nombre, categoría y precio del artículo en
// el momento del envío; es inmutable una vez creado (solo se puede borrar).
type Report struct {
	ID             int64
	Categoria      string
	ArticuloID     int64
	ArticuloNombre string
	PrecioUnidad   decimal.Decimal
	Cantidad       int
	Costo          decimal.Decimal // Cantidad × PrecioUnidad
	FechaReporte   time.Time
	Mes            string // YYYY-MM
	Notas          string
	CreatedAt      time.Time
}
