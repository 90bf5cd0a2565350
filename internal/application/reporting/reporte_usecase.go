// Package reporting deriva el plan de compra de un recuento cerrado: reporte
// agrupado, export CSV, resumen HTML/texto y PDF. Solo considera líneas con
// faltante > 0.
package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// ReporteUseCase genera los reportes de reposición de un recuento cerrado.
type ReporteUseCase struct {
	repo repository.RecuentoRepository
	pdf  PurchasePDFGenerator
}

// NewReporteUseCase construye el caso de uso. pdf puede ser nil si el export
// PDF no está habilitado.
func NewReporteUseCase(repo repository.RecuentoRepository, pdf PurchasePDFGenerator) *ReporteUseCase {
	return &ReporteUseCase{repo: repo, pdf: pdf}
}

// recuentoCerrado carga el recuento y exige estado Cerrado: los reportes solo
// tienen sentido sobre cantidades ya inmutables.
func (uc *ReporteUseCase) recuentoCerrado(ctx context.Context, id int64) (*entity.Recuento, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: recuento no encontrado", domain.ErrNotFound)
	}
	if !rec.Cerrado() {
		return nil, fmt.Errorf("%w: el recuento debe estar cerrado para generar reportes", domain.ErrForbidden)
	}
	return rec, nil
}

// Compute agrupa las líneas con faltante por categoría, con subtotal por grupo,
// total general y resumen por categoría. El orden (categoría, artículo) viene
// de la consulta y es estable: no depende del orden de inserción ni de mapas.
func (uc *ReporteUseCase) Compute(ctx context.Context, id int64) (*dto.ReporteResponse, error) {
	rec, err := uc.recuentoCerrado(ctx, id)
	if err != nil {
		return nil, err
	}
	lineas, err := uc.repo.LineasCompra(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &dto.ReporteResponse{
		Recuento:     recuento.ToRecuentoResponse(rec),
		Categorias:   []dto.CategoriaCompraDTO{},
		TotalGeneral: decimal.Zero,
	}

	// Las líneas llegan ordenadas por (categoria, articulo): cada cambio de
	// categoría abre un grupo nuevo.
	for _, l := range lineas {
		ldto := toLineaCompraDTO(l)
		n := len(out.Categorias)
		if n == 0 || out.Categorias[n-1].Categoria != l.Categoria {
			out.Categorias = append(out.Categorias, dto.CategoriaCompraDTO{
				Categoria: l.Categoria,
				Total:     decimal.Zero,
			})
			n++
		}
		grupo := &out.Categorias[n-1]
		grupo.Lineas = append(grupo.Lineas, ldto)
		grupo.Total = grupo.Total.Add(ldto.Subtotal)
		out.TotalGeneral = out.TotalGeneral.Add(ldto.Subtotal)
	}

	out.Resumen = dto.ResumenDTO{
		TotalItems:        len(lineas),
		TotalCategorias:   len(out.Categorias),
		TotalPorCategoria: make([]dto.TotalCategoriaDTO, 0, len(out.Categorias)),
	}
	for _, g := range out.Categorias {
		out.Resumen.TotalPorCategoria = append(out.Resumen.TotalPorCategoria, dto.TotalCategoriaDTO{
			Categoria:      g.Categoria,
			ItemsAComprar:  len(g.Lineas),
			TotalCategoria: g.Total,
		})
	}
	return out, nil
}

func toLineaCompraDTO(l repository.LineaCompra) dto.LineaCompraDTO {
	return dto.LineaCompraDTO{
		ID:               l.ID,
		ArticuloNombre:   l.ArticuloNombre,
		Categoria:        l.Categoria,
		PrecioUnidad:     l.PrecioUnidad,
		CantidadObjetivo: l.CantidadObjetivo,
		CantidadActual:   l.CantidadActual,
		AComprar:         l.Faltante(),
		Subtotal:         l.RecuentoLinea.Subtotal(),
		NotaLinea:        l.NotaLinea,
		Proveedor:        l.Proveedor,
		ProveedorURL:     l.ProveedorURL,
	}
}

// MonthLabel devuelve una etiqueta legible del mes YYYY-MM, ej: "Marzo 2024".
// Si el formato no es parseable devuelve el valor tal cual.
func MonthLabel(mes string) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	if !recuento.MesValido(mes) {
		return mes
	}
	var y, m int
	if _, err := fmt.Sscanf(mes, "%d-%d", &y, &m); err != nil || m < 1 || m > 12 {
		return mes
	}
	return fmt.Sprintf("%s %d", months[m-1], y)
}
