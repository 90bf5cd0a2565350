package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un recuento. Borrador → Cerrado, sin vuelta atrás.
const (
	EstadoBorrador = "Borrador"
	EstadoCerrado  = "Cerrado"
)

// Recuento agrupa las líneas de conteo físico de un mes. El mes (YYYY-MM) es
// único en todo el sistema.
type Recuento struct {
	ID            int64
	Mes           string
	Estado        string
	FechaCreacion time.Time
	FechaCierre   *time.Time // nil hasta que se cierra
}

// Cerrado indica si el recuento ya no admite ediciones.
func (r *Recuento) Cerrado() bool {
	return r.Estado == EstadoCerrado
}

// RecuentoLinea es la foto congelada de un artículo dentro de un recuento:
// nombre, categoría, precio y objetivo se copian al crear la línea y no siguen
// las ediciones posteriores del catálogo. CantidadActual es lo encontrado en el
// conteo físico.
type RecuentoLinea struct {
	ID               int64
	RecuentoID       int64
	ItemID           int64 // puede quedar huérfano si el artículo se borra después
	ArticuloNombre   string
	Categoria        string
	PrecioUnidad     decimal.Decimal
	CantidadObjetivo int
	CantidadActual   int
	NotaLinea        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Faltante devuelve max(objetivo - actual, 0): la cantidad a comprar.
func (l *RecuentoLinea) Faltante() int {
	if d := l.CantidadObjetivo - l.CantidadActual; d > 0 {
		return d
	}
	return 0
}

// Subtotal devuelve Faltante × PrecioUnidad.
func (l *RecuentoLinea) Subtotal() decimal.Decimal {
	return l.PrecioUnidad.Mul(decimal.NewFromInt(int64(l.Faltante())))
}

// Completa indica que se encontró exactamente la cantidad objetivo.
func (l *RecuentoLinea) Completa() bool {
	return l.CantidadActual == l.CantidadObjetivo
}
