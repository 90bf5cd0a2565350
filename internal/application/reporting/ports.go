package reporting

import (
	"context"

	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// PurchasePDFGenerator renderiza el plan de compra de un recuento cerrado como
// documento PDF. Implementado en infrastructure/pdf con Maroto.
type PurchasePDFGenerator interface {
	GeneratePurchasePDF(ctx context.Context, rec *entity.Recuento, lineas []repository.LineaCompra) ([]byte, error)
}
