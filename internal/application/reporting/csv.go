package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/domain"
)

// csvHeaders columnas del export de reposición, en el orden del documento final.
var csvHeaders = []string{
	"Categoría",
	"Artículo",
	"Cantidad Objetivo",
	"Cantidad Actual",
	"A Comprar",
	"Precio Unidad (€)",
	"Subtotal (€)",
	"Proveedor",
	"URL Proveedor",
}

// ExportCSV exporta las líneas de compra de un recuento cerrado como CSV.
// Los campos de texto con comas o comillas quedan entrecomillados con comillas
// internas dobladas (escapado CSV estándar de encoding/csv); los importes salen
// con dos decimales. Sin líneas de compra → domain.ErrNothingToExport.
func (uc *ReporteUseCase) ExportCSV(ctx context.Context, id int64) (*dto.ExportResponse, error) {
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

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, l := range lineas {
		row := []string{
			l.Categoria,
			l.ArticuloNombre,
			strconv.Itoa(l.CantidadObjetivo),
			strconv.Itoa(l.CantidadActual),
			strconv.Itoa(l.Faltante()),
			l.PrecioUnidad.StringFixed(2),
			l.RecuentoLinea.Subtotal().StringFixed(2),
			l.Proveedor,
			l.ProveedorURL,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}

	return &dto.ExportResponse{
		Filename:    fmt.Sprintf("blossom-reporte-%s.csv", rec.Mes),
		ContentType: "text/csv; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}
