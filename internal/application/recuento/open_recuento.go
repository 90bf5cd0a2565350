// Package recuento contiene los casos de uso del ciclo de vida de un recuento
// mensual: apertura con foto del catálogo, edición de líneas en Borrador,
// cierre irreversible y borrado.
package recuento

import (
	"context"
	"fmt"
	"regexp"

	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

var mesRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MesValido verifica el formato YYYY-MM.
func MesValido(mes string) bool {
	return mesRe.MatchString(mes)
}

// OpenUseCase abre el recuento de un mes: congela el catálogo activo en líneas
// y precarga las cantidades con el último parte de cada empleado.
type OpenUseCase struct {
	tx TxRunner
}

// NewOpenUseCase construye el caso de uso.
func NewOpenUseCase(tx TxRunner) *OpenUseCase {
	return &OpenUseCase{tx: tx}
}

// Open crea el recuento del mes en Borrador con una línea por artículo activo.
//
// Todo ocurre en una sola transacción:
//  1. Insert del recuento; la constraint UNIQUE(mes) convierte la carrera entre
//     dos aperturas concurrentes en domain.ErrDuplicate para la perdedora.
//  2. Catálogo activo ordenado por (categoria, articulo); ese orden se conserva
//     en todos los listados posteriores.
//  3. Último parte por artículo del mes (fecha más reciente, id más alto ante empate).
//  4. actual = min(encontrado, objetivo): un recuento nunca registra por encima
//     del objetivo del catálogo aunque el empleado reporte de más.
//  5. Inserción masiva de líneas copiando las notas del parte elegido.
func (uc *OpenUseCase) Open(ctx context.Context, mes string) (*dto.OpenRecuentoResponse, error) {
	if !MesValido(mes) {
		return nil, fmt.Errorf("%w: el mes es requerido (formato YYYY-MM)", domain.ErrInvalidInput)
	}

	var out *dto.OpenRecuentoResponse
	err := uc.tx.Run(ctx, func(
		recuentoRepo repository.RecuentoRepository,
		itemRepo repository.ItemRepository,
		reportRepo repository.ReportRepository,
	) error {
		rec, err := recuentoRepo.Create(ctx, mes)
		if err != nil {
			return err
		}

		items, err := itemRepo.ListActivos(ctx)
		if err != nil {
			return err
		}

		ultimos, err := reportRepo.UltimosPorArticulo(ctx, mes)
		if err != nil {
			return err
		}
		porArticulo := make(map[int64]repository.UltimoReporte, len(ultimos))
		for _, u := range ultimos {
			porArticulo[u.ArticuloID] = u
		}

		lineas := make([]*entity.RecuentoLinea, 0, len(items))
		for _, it := range items {
			encontrado := 0
			nota := ""
			if u, ok := porArticulo[it.ID]; ok {
				encontrado = u.Cantidad
				nota = u.Notas
			}
			actual := encontrado
			if actual > it.CantidadObjetivo {
				actual = it.CantidadObjetivo
			}
			lineas = append(lineas, &entity.RecuentoLinea{
				RecuentoID:       rec.ID,
				ItemID:           it.ID,
				ArticuloNombre:   it.Articulo,
				Categoria:        it.Categoria,
				PrecioUnidad:     it.PrecioUnidad,
				CantidadObjetivo: it.CantidadObjetivo,
				CantidadActual:   actual,
				NotaLinea:        nota,
			})
		}
		// Un recuento sin artículos activos es válido: queda vacío.
		if err := recuentoRepo.BulkInsertLineas(ctx, lineas); err != nil {
			return err
		}

		out = &dto.OpenRecuentoResponse{
			RecuentoResponse: ToRecuentoResponse(rec),
			LineasCount:      len(lineas),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToRecuentoResponse mapea la entidad al DTO de salida.
func ToRecuentoResponse(r *entity.Recuento) dto.RecuentoResponse {
	return dto.RecuentoResponse{
		ID:            r.ID,
		Mes:           r.Mes,
		Estado:        r.Estado,
		FechaCreacion: r.FechaCreacion,
		FechaCierre:   r.FechaCierre,
	}
}
