// Package pdf implementa la orden de compra imprimible de un recuento cerrado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Blossom — Reposición <Mes Año>  │  Fecha de cierre │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por cada categoría con faltantes:                          │
//	│    CABECERA: nombre de la categoría                         │
//	│    TABLA: Artículo | A comprar | P.Unit | Subtotal | Prov.  │
//	│    Subtotal de la categoría                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GENERAL                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/nixnvs/blossomstock-web/internal/application/reporting"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 196, Green: 69, Blue: 105}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reporting.PurchasePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePurchasePDF genera la orden de compra y devuelve sus bytes. Las
// líneas llegan ordenadas por (categoria, articulo) y todas con faltante > 0.
func (g *MarotoPDFGenerator) GeneratePurchasePDF(
	_ context.Context,
	rec *entity.Recuento,
	lineas []repository.LineaCompra,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Blossom — Orden de Reposición", true).
		WithAuthor("Blossom", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rec))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	total := decimal.Zero
	categoria := ""
	subtotal := decimal.Zero
	for _, l := range lineas {
		if l.Categoria != categoria {
			if categoria != "" {
				m.AddRows(categorySubtotalRow(categoria, subtotal))
			}
			categoria = l.Categoria
			subtotal = decimal.Zero
			m.AddRows(categoryHeaderRow(categoria))
			m.AddRows(tableHeaderRow())
		}
		m.AddRows(lineaRow(l))
		subtotal = subtotal.Add(l.Subtotal())
		total = total.Add(l.Subtotal())
	}
	if categoria != "" {
		m.AddRows(categorySubtotalRow(categoria, subtotal))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título con el mes (izq) y fecha de cierre (der).
func headerRow(rec *entity.Recuento) core.Row {
	cierre := "—"
	if rec.FechaCierre != nil {
		cierre = rec.FechaCierre.Format("02/01/2006")
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Blossom — Reposición "+reporting.MonthLabel(rec.Mes), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden de compra del recuento mensual", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Cierre: "+cierre, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Mes: "+rec.Mes, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func categoryHeaderRow(categoria string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(categoria, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Artículo", 4, align.Left),
		h("A comprar", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
		h("Proveedor", 2, align.Left),
	)
}

func lineaRow(l repository.LineaCompra) core.Row {
	proveedor := l.Proveedor
	if proveedor == "" {
		proveedor = "—"
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(
			l.ArticuloNombre,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", l.Faltante()),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			"€"+l.PrecioUnidad.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			"€"+l.Subtotal().StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			proveedor,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
	)
}

func categorySubtotalRow(categoria string, subtotal decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8),
		col.New(4).Add(text.New(
			fmt.Sprintf("Subtotal %s: €%s", categoria, subtotal.StringFixed(2)),
			props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(6).Add(text.New(
			"TOTAL GENERAL: €"+total.StringFixed(2),
			props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			},
		)),
	)
}
