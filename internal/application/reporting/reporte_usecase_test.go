package reporting_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/application/reporting"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
	"github.com/nixnvs/blossomstock-web/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testMes = "2024-03"

type escenario struct {
	tx *testutil.FakeTxRunner
	uc *reporting.ReporteUseCase
	id int64
}

type articulo struct {
	nombre    string
	categoria string
	objetivo  int
	actual    int
	precio    string
	proveedor string
	url       string
}

// montarRecuento abre un recuento con los artículos dados, ajusta las
// cantidades encontradas y lo deja en el estado pedido.
func montarRecuento(t *testing.T, arts []articulo, cerrar bool) escenario {
	t.Helper()
	ctx := context.Background()
	tx := testutil.NewFakeTxRunner()

	for _, a := range arts {
		p, err := decimal.NewFromString(a.precio)
		require.NoError(t, err)
		item := &entity.Item{
			Articulo:         a.nombre,
			Categoria:        a.categoria,
			PrecioUnidad:     p,
			CantidadObjetivo: a.objetivo,
			Proveedor:        a.proveedor,
			ProveedorURL:     a.url,
			Activo:           true,
		}
		require.NoError(t, tx.ItemRepo.Create(ctx, item))
	}

	out, err := recuento.NewOpenUseCase(tx).Open(ctx, testMes)
	require.NoError(t, err)

	lineas, err := tx.RecuentoRepo.Lineas(ctx, out.ID)
	require.NoError(t, err)
	porNombre := make(map[string]int)
	for _, a := range arts {
		porNombre[a.nombre] = a.actual
	}
	for _, l := range lineas {
		actual := porNombre[l.ArticuloNombre]
		if actual != l.CantidadActual {
			_, err := tx.RecuentoRepo.UpdateLinea(ctx, out.ID, l.ID, repository.LineaPatch{CantidadActual: &actual})
			require.NoError(t, err)
		}
	}
	if cerrar {
		lc := recuento.NewLifecycleUseCase(tx.RecuentoRepo)
		_, err := lc.UpdateEstado(ctx, out.ID, entity.EstadoCerrado)
		require.NoError(t, err)
	}

	return escenario{
		tx: tx,
		uc: reporting.NewReporteUseCase(tx.RecuentoRepo, nil),
		id: out.ID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Puerta de cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_RecuentoBorrador(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 2, precio: "2.50"},
	}, false)

	_, err := esc.uc.Compute(context.Background(), esc.id)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"el reporte solo existe sobre recuentos cerrados")
}

func TestCompute_RecuentoInexistente(t *testing.T) {
	esc := montarRecuento(t, nil, false)

	_, err := esc.uc.Compute(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo del plan de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_SoloLineasConFaltante(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 10, precio: "2.50"}, // completo
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00"},      // faltan 4
	}, true)

	out, err := esc.uc.Compute(context.Background(), esc.id)
	require.NoError(t, err)

	require.Len(t, out.Categorias, 1, "los artículos completos no entran al plan")
	assert.Equal(t, "Copas", out.Categorias[0].Categoria)
	require.Len(t, out.Categorias[0].Lineas, 1)

	l := out.Categorias[0].Lineas[0]
	assert.Equal(t, 4, l.AComprar)
	assert.True(t, l.Subtotal.Equal(decimal.RequireFromString("12.00")),
		"subtotal = faltante × precio")
}

func TestCompute_SubtotalEscenarioReferencia(t *testing.T) {
	// objetivo 10, actual 0 editado a 0; precio 2.50 → 10 × 2.50 = 25.00
	esc := montarRecuento(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 0, precio: "2.50"},
	}, true)

	out, err := esc.uc.Compute(context.Background(), esc.id)
	require.NoError(t, err)
	assert.True(t, out.TotalGeneral.Equal(decimal.RequireFromString("25.00")))
}

func TestCompute_TotalGeneralEsSumaDeGrupos(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 4, precio: "2.50"}, // 15.00
		{nombre: "Plato hondo", categoria: "Platos", objetivo: 8, actual: 6, precio: "3.00"},  // 6.00
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 1, precio: "3.00"},     // 15.00
	}, true)

	out, err := esc.uc.Compute(context.Background(), esc.id)
	require.NoError(t, err)

	suma := decimal.Zero
	for _, g := range out.Categorias {
		suma = suma.Add(g.Total)
	}
	assert.True(t, out.TotalGeneral.Equal(suma), "el total general es la suma de los grupos")
	assert.True(t, out.TotalGeneral.Equal(decimal.RequireFromString("36.00")))

	assert.Equal(t, 3, out.Resumen.TotalItems)
	assert.Equal(t, 2, out.Resumen.TotalCategorias)
}

func TestCompute_OrdenPorCategoriaYArticulo(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Vaso tubo", categoria: "Barware", objetivo: 5, actual: 0, precio: "1.00"},
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 0, precio: "3.00"},
		{nombre: "Copa agua", categoria: "Copas", objetivo: 6, actual: 0, precio: "2.00"},
	}, true)

	out, err := esc.uc.Compute(context.Background(), esc.id)
	require.NoError(t, err)

	require.Len(t, out.Categorias, 2)
	assert.Equal(t, "Barware", out.Categorias[0].Categoria)
	assert.Equal(t, "Copas", out.Categorias[1].Categoria)
	require.Len(t, out.Categorias[1].Lineas, 2)
	assert.Equal(t, "Copa agua", out.Categorias[1].Lineas[0].ArticuloNombre)
	assert.Equal(t, "Copa vino", out.Categorias[1].Lineas[1].ArticuloNombre)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_Contenido(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00",
			proveedor: "Vajillas SL", url: "https://vajillas.example/copa"},
	}, true)

	out, err := esc.uc.ExportCSV(context.Background(), esc.id)
	require.NoError(t, err)

	assert.Equal(t, "blossom-reporte-2024-03.csv", out.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", out.ContentType)

	body := string(out.Body)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2, "cabecera + una línea de compra")
	assert.Equal(t,
		"Categoría,Artículo,Cantidad Objetivo,Cantidad Actual,A Comprar,Precio Unidad (€),Subtotal (€),Proveedor,URL Proveedor",
		lines[0])
	assert.Equal(t, "Copas,Copa vino,6,2,4,3.00,12.00,Vajillas SL,https://vajillas.example/copa", lines[1])
}

func TestExportCSV_EscapaComasYComillas(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: `Plato "especial", grande`, categoria: "Platos", objetivo: 2, actual: 0, precio: "5.00"},
	}, true)

	out, err := esc.uc.ExportCSV(context.Background(), esc.id)
	require.NoError(t, err)
	assert.Contains(t, string(out.Body), `"Plato ""especial"", grande"`,
		"los campos con comas o comillas van entrecomillados con comillas dobladas")
}

func TestExportCSV_SinFaltantes(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 10, precio: "2.50"},
	}, true)

	_, err := esc.uc.ExportCSV(context.Background(), esc.id)
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}

func TestExportCSV_RecuentoBorrador(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 2, precio: "2.50"},
	}, false)

	_, err := esc.uc.ExportCSV(context.Background(), esc.id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiqueta del mes
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Marzo 2024", reporting.MonthLabel("2024-03"))
	assert.Equal(t, "Diciembre 2025", reporting.MonthLabel("2025-12"))
	assert.Equal(t, "no-es-mes", reporting.MonthLabel("no-es-mes"), "formato raro se devuelve tal cual")
}
