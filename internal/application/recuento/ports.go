package recuento

import (
	"context"

	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la apertura de un recuento
// (insert + lectura de catálogo + inserción masiva de líneas) y las cascadas de
// borrado sean atómicas: ningún fallo intermedio deja escrituras parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recuentoRepo repository.RecuentoRepository,
		itemRepo repository.ItemRepository,
		reportRepo repository.ReportRepository,
	) error) error
}
