package repository

import (
	"context"

	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
)

// LineaPatch campos opcionales de una edición de línea. Solo se actualizan los
// campos presentes (mapa de presencia, no valores nulos).
type LineaPatch struct {
	CantidadActual *int
	NotaLinea      *string
}

// LineaConFoto línea de recuento junto a la foto actual del artículo (join
// débil: la foto puede faltar si el artículo ya no existe).
type LineaConFoto struct {
	entity.RecuentoLinea
	Foto string
}

// LineaCompra línea con faltante > 0 más los datos de proveedor del artículo
// vivo, lista para el plan de compra.
type LineaCompra struct {
	entity.RecuentoLinea
	Proveedor    string
	ProveedorURL string
}

// RecuentoRepository define el puerto de persistencia para Recuento y sus líneas.
type RecuentoRepository interface {
	// Create inserta el recuento en Borrador. Mes duplicado → domain.ErrDuplicate
	// (la unicidad la garantiza la constraint de la tabla, no un pre-chequeo).
	Create(ctx context.Context, mes string) (*entity.Recuento, error)
	GetByID(ctx context.Context, id int64) (*entity.Recuento, error)
	List(ctx context.Context) ([]*entity.Recuento, error)
	ListCerrados(ctx context.Context) ([]*entity.Recuento, error)
	// GetByMes devuelve el recuento del mes prefiriendo Cerrado sobre Borrador
	// y el más reciente ante datos inconsistentes; nil si no existe.
	GetByMes(ctx context.Context, mes string) (*entity.Recuento, error)
	// Cerrar es un compare-and-set: solo cierra si el estado sigue en Borrador.
	// Devuelve false si el recuento no estaba en Borrador.
	Cerrar(ctx context.Context, id int64) (*entity.Recuento, bool, error)
	Delete(ctx context.Context, id int64) error

	// BulkInsertLineas inserta las líneas iniciales de un recuento de una vez.
	BulkInsertLineas(ctx context.Context, lineas []*entity.RecuentoLinea) error
	GetLinea(ctx context.Context, recuentoID, lineaID int64) (*entity.RecuentoLinea, error)
	// Lineas devuelve las líneas ordenadas por (categoria ASC, articulo_nombre ASC).
	Lineas(ctx context.Context, recuentoID int64) ([]LineaConFoto, error)
	// UpdateLinea aplica el patch y estampa updated_at.
	UpdateLinea(ctx context.Context, recuentoID, lineaID int64, patch LineaPatch) (*entity.RecuentoLinea, error)
	// LineasCompra devuelve solo líneas con faltante > 0, mismo orden canónico.
	LineasCompra(ctx context.Context, recuentoID int64) ([]LineaCompra, error)
	DeleteLineasByItem(ctx context.Context, itemID int64) error
	// DeleteAll borra todas las líneas y todos los recuentos.
	DeleteAll(ctx context.Context) error
}
