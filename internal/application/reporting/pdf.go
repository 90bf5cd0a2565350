package reporting

import (
	"context"
	"fmt"

	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/domain"
)

// ExportPDF exporta el plan de compra como PDF imprimible (orden de compra por
// categoría). Mismo conjunto de líneas que el CSV; sin faltantes →
// domain.ErrNothingToExport.
func (uc *ReporteUseCase) ExportPDF(ctx context.Context, id int64) (*dto.ExportResponse, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("%w: export PDF no habilitado", domain.ErrInvalidInput)
	}
	rec, err := uc.recuentoCerrado(ctx, id)
	if err != nil {
		return nil, err
	}
	lineas, err := uc.repo.LineasCompra(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(lineas) == 0 {
		return nil, fmt.Errorf("%w: no hay artículos para comprar en este recuento", domain.ErrNothingToExport)
	}

	body, err := uc.pdf.GeneratePurchasePDF(ctx, rec, lineas)
	if err != nil {
		return nil, fmt.Errorf("generar PDF de reposición: %w", err)
	}
	return &dto.ExportResponse{
		Filename:    fmt.Sprintf("blossom-reporte-%s.pdf", rec.Mes),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}
