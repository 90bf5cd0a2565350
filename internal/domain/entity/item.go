package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorias válidas del catálogo. El orden es el de presentación.
var Categorias = []string{
	"Platos", "Copas", "Bowls", "Cubiertos", "Barware", "Cocina", "Servicio", "Otros",
}

// CategoriaValida verifica que la categoría pertenezca al conjunto fijo.
func CategoriaValida(c string) bool {
	for _, v := range Categorias {
		if v == c {
			return true
		}
	}
	return false
}

// Item representa un artículo del catálogo de stock.
// PrecioUnidad y CantidadObjetivo alimentan el plan de compra de los recuentos.
type Item struct {
	ID               int64
	Articulo         string
	Categoria        string
	Foto             string
	PrecioUnidad     decimal.Decimal
	CantidadObjetivo int
	Unidad           string
	Proveedor        string
	ProveedorURL     string
	Activo           bool
	CreatedAt        time.Time
}
