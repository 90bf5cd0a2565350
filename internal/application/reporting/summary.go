package reporting

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// Modos de agrupación del resumen.
const (
	ViewCategoria = "categoria"
	ViewProveedor = "proveedor"
)

// proveedorDesconocido cubo para líneas sin proveedor asignado en modo proveedor.
const proveedorDesconocido = "Proveedor desconocido"

const sinCompras = "No hay artículos para comprar en este recuento."

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Summary genera el resumen de reposición en HTML y su versión en texto plano
// (mismo contenido sin etiquetas). viewMode vacío equivale a categoria.
func (uc *ReporteUseCase) Summary(ctx context.Context, id int64, viewMode string) (*dto.SummaryResponse, error) {
	if viewMode == "" {
		viewMode = ViewCategoria
	}
	if viewMode != ViewCategoria && viewMode != ViewProveedor {
		return nil, fmt.Errorf("%w: view_mode debe ser 'categoria' o 'proveedor'", domain.ErrInvalidInput)
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
		return &dto.SummaryResponse{Summary: sinCompras, PlainText: sinCompras}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>🌸 Blossom — Reposición %s</h2>\n\n", MonthLabel(rec.Mes))

	total := decimal.Zero
	for _, l := range lineas {
		total = total.Add(l.RecuentoLinea.Subtotal())
	}
	fmt.Fprintf(&b, "<p><strong>Total general: €%s</strong></p>\n\n", total.StringFixed(2))

	if viewMode == ViewProveedor {
		writeResumenPorProveedor(&b, lineas)
	} else {
		writeResumenPorCategoria(&b, lineas)
	}

	summary := strings.TrimSpace(b.String())
	return &dto.SummaryResponse{
		Summary:   summary,
		PlainText: strings.TrimSpace(tagRe.ReplaceAllString(summary, "")),
	}, nil
}

// writeResumenPorCategoria: las líneas ya vienen ordenadas por (categoria,
// articulo); cada categoría es una cabecera con su lista.
func writeResumenPorCategoria(b *strings.Builder, lineas []repository.LineaCompra) {
	var actual string
	for i, l := range lineas {
		if l.Categoria != actual {
			if i > 0 {
				b.WriteString("</ul>\n\n")
			}
			fmt.Fprintf(b, "<h3>%s</h3>\n<ul>\n", l.Categoria)
			actual = l.Categoria
		}
		enlace := ""
		if l.ProveedorURL != "" {
			enlace = fmt.Sprintf(` — <a href="%s" target="_blank">Comprar</a>`, l.ProveedorURL)
		} else if l.Proveedor != "" {
			enlace = " — " + l.Proveedor
		}
		fmt.Fprintf(b, "  <li>%s — %d × €%s = €%s%s</li>\n",
			l.ArticuloNombre, l.Faltante(), l.PrecioUnidad.StringFixed(2),
			l.RecuentoLinea.Subtotal().StringFixed(2), enlace)
	}
	b.WriteString("</ul>\n\n")
}

// writeResumenPorProveedor agrupa por proveedor (alfabético; sin proveedor →
// cubo "Proveedor desconocido") con los artículos de cada grupo ordenados por nombre.
func writeResumenPorProveedor(b *strings.Builder, lineas []repository.LineaCompra) {
	grupos := make(map[string][]repository.LineaCompra)
	for _, l := range lineas {
		nombre := l.Proveedor
		if nombre == "" {
			nombre = proveedorDesconocido
		}
		grupos[nombre] = append(grupos[nombre], l)
	}

	nombres := make([]string, 0, len(grupos))
	for nombre := range grupos {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)

	for _, nombre := range nombres {
		grupo := grupos[nombre]
		sort.SliceStable(grupo, func(i, j int) bool {
			return grupo[i].ArticuloNombre < grupo[j].ArticuloNombre
		})

		fmt.Fprintf(b, "<h3>%s</h3>\n<ul>\n", nombre)
		for _, l := range grupo {
			enlace := ""
			if l.ProveedorURL != "" {
				enlace = fmt.Sprintf(` — <a href="%s" target="_blank">Comprar</a>`, l.ProveedorURL)
			}
			fmt.Fprintf(b, "  <li>%s (%s) — %d × €%s = €%s%s</li>\n",
				l.ArticuloNombre, l.Categoria, l.Faltante(), l.PrecioUnidad.StringFixed(2),
				l.RecuentoLinea.Subtotal().StringFixed(2), enlace)
		}
		b.WriteString("</ul>\n\n")
	}
}
