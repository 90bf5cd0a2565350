package usecase

import (
	"context"
	"fmt"

	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// confirmacionReset frase exacta que el cliente debe enviar para borrar todo.
const confirmacionReset = "BORRAR TODO"

// AdminUseCase operaciones administrativas destructivas.
type AdminUseCase struct {
	tx recuento.TxRunner
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(tx recuento.TxRunner) *AdminUseCase {
	return &AdminUseCase{tx: tx}
}

// Reset borra todos los datos de la aplicación (líneas, recuentos, partes y
// artículos) en una sola transacción. Exige la frase de confirmación exacta.
func (uc *AdminUseCase) Reset(ctx context.Context, confirmacion string) error {
	if confirmacion != confirmacionReset {
		return fmt.Errorf("%w: confirmación requerida: envía confirmacion=%q", domain.ErrForbidden, confirmacionReset)
	}
	return uc.tx.Run(ctx, func(
		recuentoRepo repository.RecuentoRepository,
		itemRepo repository.ItemRepository,
		reportRepo repository.ReportRepository,
	) error {
		if err := recuentoRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := reportRepo.DeleteAll(ctx); err != nil {
			return err
		}
		return itemRepo.DeleteAll(ctx)
	})
}
