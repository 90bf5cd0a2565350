package reporting_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixnvs/blossomstock-web/internal/application/reporting"
	"github.com/nixnvs/blossomstock-web/internal/domain"
)

func TestSummary_ViewModeInvalido(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00"},
	}, true)

	_, err := esc.uc.Summary(context.Background(), esc.id, "inventado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummary_PorCategoria(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00",
			proveedor: "Vajillas SL", url: "https://vajillas.example/copa"},
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 4, precio: "2.50",
			proveedor: "Menaje SA"}, // sin URL: solo el nombre
	}, true)

	out, err := esc.uc.Summary(context.Background(), esc.id, "")
	require.NoError(t, err)

	assert.Contains(t, out.Summary, "<h2>🌸 Blossom — Reposición Marzo 2024</h2>")
	assert.Contains(t, out.Summary, "Total general: €27.00") // 12.00 + 15.00
	assert.Contains(t, out.Summary, "<h3>Copas</h3>")
	assert.Contains(t, out.Summary, "<h3>Platos</h3>")
	assert.Contains(t, out.Summary, `<a href="https://vajillas.example/copa" target="_blank">Comprar</a>`)
	assert.Contains(t, out.Summary, "— Menaje SA", "sin URL se muestra el proveedor a secas")

	// Copas va antes que Platos (orden canónico del recuento).
	assert.Less(t,
		strings.Index(out.Summary, "<h3>Copas</h3>"),
		strings.Index(out.Summary, "<h3>Platos</h3>"))
}

func TestSummary_PorProveedor(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00",
			proveedor: "Vajillas SL", url: "https://vajillas.example/copa"},
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 4, precio: "2.50"}, // sin proveedor
	}, true)

	out, err := esc.uc.Summary(context.Background(), esc.id, reporting.ViewProveedor)
	require.NoError(t, err)

	assert.Contains(t, out.Summary, "<h3>Vajillas SL</h3>")
	assert.Contains(t, out.Summary, "<h3>Proveedor desconocido</h3>",
		"las líneas sin proveedor caen en el cubo Proveedor desconocido")

	// Orden alfabético de proveedores: P antes que V.
	assert.Less(t,
		strings.Index(out.Summary, "<h3>Proveedor desconocido</h3>"),
		strings.Index(out.Summary, "<h3>Vajillas SL</h3>"))
}

func TestSummary_PlainTextSinEtiquetas(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00"},
	}, true)

	out, err := esc.uc.Summary(context.Background(), esc.id, "categoria")
	require.NoError(t, err)

	assert.NotContains(t, out.PlainText, "<")
	assert.NotContains(t, out.PlainText, ">")
	assert.Contains(t, out.PlainText, "Blossom — Reposición Marzo 2024")
	assert.Contains(t, out.PlainText, "Copa vino")
}

func TestSummary_SinCompras(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 10, precio: "2.50"},
	}, true)

	out, err := esc.uc.Summary(context.Background(), esc.id, "")
	require.NoError(t, err, "sin faltantes el resumen no es un error")
	assert.Equal(t, "No hay artículos para comprar en este recuento.", out.Summary)
	assert.Equal(t, out.Summary, out.PlainText)
}

func TestSummary_RecuentoBorrador(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00"},
	}, false)

	_, err := esc.uc.Summary(context.Background(), esc.id, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExportPDF_SinGenerador(t *testing.T) {
	esc := montarRecuento(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 2, precio: "3.00"},
	}, true)

	// El escenario monta el caso de uso sin generador PDF.
	_, err := esc.uc.ExportPDF(context.Background(), esc.id)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
