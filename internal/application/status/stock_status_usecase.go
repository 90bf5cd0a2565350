// Package status calcula los KPIs de avance del recuento de un mes y el
// desglose de progreso por categoría, exista o no un reporte generado.
package status

import (
	"context"
	"fmt"
	"math"

	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// Estados de avance de un artículo.
const (
	EstadoVerde    = "verde"    // actual == objetivo
	EstadoAmarillo = "amarillo" // actual >= floor(objetivo × 0.7)
	EstadoRojo     = "rojo"     // por debajo del 70%
)

// StockStatusUseCase agrega el estado de stock del recuento de un mes.
type StockStatusUseCase struct {
	repo repository.RecuentoRepository
}

// NewStockStatusUseCase construye el caso de uso.
func NewStockStatusUseCase(repo repository.RecuentoRepository) *StockStatusUseCase {
	return &StockStatusUseCase{repo: repo}
}

// Compute calcula los KPIs del mes. Si el mes no tiene recuento devuelve un
// resultado a cero con la lista de categorías vacía. Ante datos inconsistentes
// (varios recuentos del mismo mes) el repositorio prefiere Cerrado y luego el
// más reciente.
func (uc *StockStatusUseCase) Compute(ctx context.Context, mes string) (*dto.StockStatusResponse, error) {
	if !recuento.MesValido(mes) {
		return nil, fmt.Errorf("%w: parámetro mes es requerido (formato YYYY-MM)", domain.ErrInvalidInput)
	}

	rec, err := uc.repo.GetByMes(ctx, mes)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &dto.StockStatusResponse{
			Mes:        mes,
			Recuento:   nil,
			KPIs:       dto.KPIsDTO{},
			Categorias: []dto.CategoriaStatusDTO{},
		}, nil
	}

	lineas, err := uc.repo.Lineas(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	recDTO := recuento.ToRecuentoResponse(rec)
	out := &dto.StockStatusResponse{
		Mes:        mes,
		Recuento:   &recDTO,
		Categorias: []dto.CategoriaStatusDTO{},
	}

	completos := 0
	faltantes := 0
	// Las líneas llegan en orden (categoria ASC, articulo ASC); el primer máximo
	// encontrado gana, así el desempate de la categoría más afectada es la
	// precedencia alfabética, no el orden de inserción.
	faltantesPorCategoria := make(map[string]int)
	masAfectada := ""
	maxFaltantes := 0

	for _, l := range lineas {
		if l.Completa() {
			completos++
		}
		if l.CantidadActual < l.CantidadObjetivo {
			faltantes++
			faltantesPorCategoria[l.Categoria]++
			if faltantesPorCategoria[l.Categoria] > maxFaltantes {
				maxFaltantes = faltantesPorCategoria[l.Categoria]
				masAfectada = l.Categoria
			}
		}

		n := len(out.Categorias)
		if n == 0 || out.Categorias[n-1].Nombre != l.Categoria {
			out.Categorias = append(out.Categorias, dto.CategoriaStatusDTO{Nombre: l.Categoria})
			n++
		}
		grupo := &out.Categorias[n-1]
		grupo.TotalActual += l.CantidadActual
		grupo.TotalObjetivo += l.CantidadObjetivo
		grupo.Articulos = append(grupo.Articulos, dto.ArticuloStatusDTO{
			ID:               l.ID,
			Nombre:           l.ArticuloNombre,
			CantidadActual:   l.CantidadActual,
			CantidadObjetivo: l.CantidadObjetivo,
			Porcentaje:       porcentaje(l.CantidadActual, l.CantidadObjetivo),
			Estado:           estadoArticulo(l.CantidadActual, l.CantidadObjetivo),
			Nota:             l.NotaLinea,
		})
	}

	for i := range out.Categorias {
		g := &out.Categorias[i]
		g.PorcentajeProgreso = porcentaje(g.TotalActual, g.TotalObjetivo)
	}

	out.KPIs = dto.KPIsDTO{
		PorcentajeCompletos:   porcentaje(completos, len(lineas)),
		ArticulosConFaltantes: faltantes,
		CategoriaMasAfectada:  masAfectada,
		TotalArticulos:        len(lineas),
	}
	return out, nil
}

// porcentaje redondea 100×actual/total; 0 cuando el total es 0.
func porcentaje(actual, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(actual) / float64(total) * 100))
}

func estadoArticulo(actual, objetivo int) string {
	switch {
	case actual == objetivo:
		return EstadoVerde
	case actual >= int(math.Floor(float64(objetivo)*0.7)):
		return EstadoAmarillo
	default:
		return EstadoRojo
	}
}
