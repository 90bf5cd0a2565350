package status_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/application/status"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
	"github.com/nixnvs/blossomstock-web/internal/testutil"
)

const testMes = "2024-03"

type articulo struct {
	nombre    string
	categoria string
	objetivo  int
	actual    int
}

// montarMes abre el recuento del mes con los artículos dados y deja las
// cantidades encontradas como indica cada fila.
func montarMes(t *testing.T, arts []articulo) (*testutil.FakeTxRunner, *status.StockStatusUseCase) {
	t.Helper()
	ctx := context.Background()
	tx := testutil.NewFakeTxRunner()

	for _, a := range arts {
		item := &entity.Item{
			Articulo:         a.nombre,
			Categoria:        a.categoria,
			PrecioUnidad:     decimal.NewFromInt(1),
			CantidadObjetivo: a.objetivo,
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
	return tx, status.NewStockStatusUseCase(tx.RecuentoRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y mes sin recuento
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_MesInvalido(t *testing.T) {
	_, uc := montarMes(t, nil)

	for _, mes := range []string{"", "2024", "2024-13"} {
		_, err := uc.Compute(context.Background(), mes)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "mes %q debe ser rechazado", mes)
	}
}

func TestCompute_MesSinRecuento(t *testing.T) {
	_, uc := montarMes(t, nil)

	out, err := uc.Compute(context.Background(), "2030-01")
	require.NoError(t, err, "un mes sin recuento no es un error")
	assert.Nil(t, out.Recuento)
	assert.Equal(t, 0, out.KPIs.TotalArticulos)
	assert.Empty(t, out.Categorias)
}

// ──────────────────────────────────────────────────────────────────────────────
// KPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_KPIsEscenarioReferencia(t *testing.T) {
	// 4 artículos, 3 completos → 75% completos, 1 con faltantes.
	_, uc := montarMes(t, []articulo{
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 10},
		{nombre: "Plato hondo", categoria: "Platos", objetivo: 8, actual: 8},
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 6},
		{nombre: "Copa agua", categoria: "Copas", objetivo: 6, actual: 3},
	})

	out, err := uc.Compute(context.Background(), testMes)
	require.NoError(t, err)

	assert.Equal(t, 75, out.KPIs.PorcentajeCompletos)
	assert.Equal(t, 1, out.KPIs.ArticulosConFaltantes)
	assert.Equal(t, "Copas", out.KPIs.CategoriaMasAfectada)
	assert.Equal(t, 4, out.KPIs.TotalArticulos)
}

func TestCompute_CategoriaMasAfectada_DesempateAlfabetico(t *testing.T) {
	// Barware y Platos con un faltante cada una: gana Barware por orden alfabético.
	_, uc := montarMes(t, []articulo{
		{nombre: "Vaso tubo", categoria: "Barware", objetivo: 5, actual: 1},
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 2},
	})

	out, err := uc.Compute(context.Background(), testMes)
	require.NoError(t, err)
	assert.Equal(t, "Barware", out.KPIs.CategoriaMasAfectada)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados por artículo y progreso por categoría
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_EstadosVerdeAmarilloRojo(t *testing.T) {
	// objetivo 10 → umbral amarillo floor(10×0.7)=7.
	_, uc := montarMes(t, []articulo{
		{nombre: "A verde", categoria: "Platos", objetivo: 10, actual: 10},
		{nombre: "B amarillo", categoria: "Platos", objetivo: 10, actual: 7},
		{nombre: "C rojo", categoria: "Platos", objetivo: 10, actual: 6},
	})

	out, err := uc.Compute(context.Background(), testMes)
	require.NoError(t, err)

	require.Len(t, out.Categorias, 1)
	arts := out.Categorias[0].Articulos
	require.Len(t, arts, 3)

	assert.Equal(t, status.EstadoVerde, arts[0].Estado)
	assert.Equal(t, 100, arts[0].Porcentaje)
	assert.Equal(t, status.EstadoAmarillo, arts[1].Estado)
	assert.Equal(t, 70, arts[1].Porcentaje)
	assert.Equal(t, status.EstadoRojo, arts[2].Estado)
	assert.Equal(t, 60, arts[2].Porcentaje)
}

func TestCompute_ObjetivoCero_EsVerde(t *testing.T) {
	_, uc := montarMes(t, []articulo{
		{nombre: "Descatalogado", categoria: "Otros", objetivo: 0, actual: 0},
	})

	out, err := uc.Compute(context.Background(), testMes)
	require.NoError(t, err)

	arts := out.Categorias[0].Articulos
	require.Len(t, arts, 1)
	assert.Equal(t, status.EstadoVerde, arts[0].Estado, "0 de 0 cuenta como completo")
	assert.Equal(t, 0, arts[0].Porcentaje, "sin objetivo el porcentaje queda en 0")
}

func TestCompute_ProgresoPorCategoria(t *testing.T) {
	_, uc := montarMes(t, []articulo{
		{nombre: "Copa vino", categoria: "Copas", objetivo: 6, actual: 3},
		{nombre: "Copa agua", categoria: "Copas", objetivo: 6, actual: 6},
		{nombre: "Plato llano", categoria: "Platos", objetivo: 10, actual: 5},
	})

	out, err := uc.Compute(context.Background(), testMes)
	require.NoError(t, err)

	require.Len(t, out.Categorias, 2)
	copas := out.Categorias[0]
	assert.Equal(t, "Copas", copas.Nombre)
	assert.Equal(t, 9, copas.TotalActual)
	assert.Equal(t, 12, copas.TotalObjetivo)
	assert.Equal(t, 75, copas.PorcentajeProgreso)

	platos := out.Categorias[1]
	assert.Equal(t, "Platos", platos.Nombre)
	assert.Equal(t, 50, platos.PorcentajeProgreso)
}

func TestCompute_RedondeoDePorcentajes(t *testing.T) {
	// 1 de 3 → 33.33… % redondea a 33; 2 de 3 → 66.67 % redondea a 67.
	_, uc := montarMes(t, []articulo{
		{nombre: "Bol chico", categoria: "Bowls", objetivo: 3, actual: 1},
		{nombre: "Bol grande", categoria: "Bowls", objetivo: 3, actual: 2},
	})

	out, err := uc.Compute(context.Background(), testMes)
	require.NoError(t, err)

	arts := out.Categorias[0].Articulos
	assert.Equal(t, 33, arts[0].Porcentaje)
	assert.Equal(t, 67, arts[1].Porcentaje)
}
