package recuento_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testMes = "2024-03"

func seedItem(t *testing.T, tx *testutil.FakeTxRunner, articulo, categoria string, objetivo int, precio string, activo bool) *entity.Item {
	t.Helper()
	p, err := decimal.NewFromString(precio)
	require.NoError(t, err)
	item := &entity.Item{
		Articulo:         articulo,
		Categoria:        categoria,
		PrecioUnidad:     p,
		CantidadObjetivo: objetivo,
		Activo:           activo,
	}
	require.NoError(t, tx.ItemRepo.Create(context.Background(), item))
	return item
}

func seedReport(t *testing.T, tx *testutil.FakeTxRunner, item *entity.Item, cantidad int, fecha time.Time, notas string) *entity.Report {
	t.Helper()
	rep := &entity.Report{
		Categoria:      item.Categoria,
		ArticuloID:     item.ID,
		ArticuloNombre: item.Articulo,
		PrecioUnidad:   item.PrecioUnidad,
		Cantidad:       cantidad,
		FechaReporte:   fecha,
		Mes:            testMes,
		Notas:          notas,
	}
	require.NoError(t, tx.ReportRepo.Create(context.Background(), rep))
	return rep
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del mes
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_MesInvalido(t *testing.T) {
	uc := recuento.NewOpenUseCase(testutil.NewFakeTxRunner())

	for _, mes := range []string{"", "2024", "2024-13", "2024-00", "marzo", "2024-3"} {
		_, err := uc.Open(context.Background(), mes)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "mes %q debe ser rechazado", mes)
	}
}

func TestMesValido(t *testing.T) {
	assert.True(t, recuento.MesValido("2024-01"))
	assert.True(t, recuento.MesValido("2024-12"))
	assert.False(t, recuento.MesValido("2024-13"))
	assert.False(t, recuento.MesValido("24-01"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura: foto del catálogo + precarga con el último parte
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_CreaLineaPorArticuloActivo(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	seedItem(t, tx, "Plato llano", "Platos", 10, "2.50", true)
	seedItem(t, tx, "Copa vino", "Copas", 6, "3.00", true)
	seedItem(t, tx, "Bowl retirado", "Bowls", 4, "1.00", false) // inactivo: fuera

	uc := recuento.NewOpenUseCase(tx)
	out, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)

	assert.Equal(t, testMes, out.Mes)
	assert.Equal(t, entity.EstadoBorrador, out.Estado)
	assert.Equal(t, 2, out.LineasCount, "solo los artículos activos generan línea")

	lineas, err := tx.RecuentoRepo.Lineas(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, lineas, 2)
	// Orden canónico: Copas antes que Platos
	assert.Equal(t, "Copa vino", lineas[0].ArticuloNombre)
	assert.Equal(t, "Plato llano", lineas[1].ArticuloNombre)
}

func TestOpen_SinPartes_CantidadCero(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	seedItem(t, tx, "Plato llano", "Platos", 10, "2.50", true)

	uc := recuento.NewOpenUseCase(tx)
	out, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)

	lineas, _ := tx.RecuentoRepo.Lineas(context.Background(), out.ID)
	require.Len(t, lineas, 1)
	assert.Equal(t, 0, lineas[0].CantidadActual, "sin parte del mes la cantidad arranca en 0")
	assert.Equal(t, 10, lineas[0].CantidadObjetivo)
}

func TestOpen_PrecargaUltimoParte(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	item := seedItem(t, tx, "Plato llano", "Platos", 10, "2.50", true)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedReport(t, tx, item, 3, base, "parte viejo")
	seedReport(t, tx, item, 7, base.Add(48*time.Hour), "parte reciente")

	uc := recuento.NewOpenUseCase(tx)
	out, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)

	lineas, _ := tx.RecuentoRepo.Lineas(context.Background(), out.ID)
	require.Len(t, lineas, 1)
	assert.Equal(t, 7, lineas[0].CantidadActual, "gana el parte más reciente")
	assert.Equal(t, "parte reciente", lineas[0].NotaLinea, "la nota viaja con el parte elegido")
}

func TestOpen_EmpateDeFecha_GanaIDMasAlto(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	item := seedItem(t, tx, "Plato llano", "Platos", 10, "2.50", true)

	misma := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	seedReport(t, tx, item, 2, misma, "primero")
	seedReport(t, tx, item, 5, misma, "segundo")

	uc := recuento.NewOpenUseCase(tx)
	out, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)

	lineas, _ := tx.RecuentoRepo.Lineas(context.Background(), out.ID)
	require.Len(t, lineas, 1)
	assert.Equal(t, 5, lineas[0].CantidadActual, "con fechas idénticas gana el id más alto")
}

func TestOpen_RecortaAlObjetivo(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	item := seedItem(t, tx, "Copa vino", "Copas", 6, "3.00", true)
	seedReport(t, tx, item, 14, time.Now(), "")

	uc := recuento.NewOpenUseCase(tx)
	out, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)

	lineas, _ := tx.RecuentoRepo.Lineas(context.Background(), out.ID)
	require.Len(t, lineas, 1)
	assert.Equal(t, 6, lineas[0].CantidadActual,
		"la precarga nunca supera el objetivo aunque el parte reporte más")
}

func TestOpen_CongelaPrecioYObjetivo(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	item := seedItem(t, tx, "Plato llano", "Platos", 10, "2.50", true)

	uc := recuento.NewOpenUseCase(tx)
	out, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)

	// Editar el catálogo después de abrir no toca la línea.
	item.PrecioUnidad = decimal.NewFromInt(99)
	item.CantidadObjetivo = 1
	require.NoError(t, tx.ItemRepo.Update(context.Background(), item))

	lineas, _ := tx.RecuentoRepo.Lineas(context.Background(), out.ID)
	require.Len(t, lineas, 1)
	assert.True(t, lineas[0].PrecioUnidad.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, 10, lineas[0].CantidadObjetivo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Unicidad y casos borde
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_MesDuplicado(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := recuento.NewOpenUseCase(tx)

	_, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)

	_, err = uc.Open(context.Background(), testMes)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el segundo recuento del mismo mes debe fallar")
}

func TestOpen_CatalogoVacio_RecuentoValido(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := recuento.NewOpenUseCase(tx)

	out, err := uc.Open(context.Background(), testMes)
	require.NoError(t, err)
	assert.Equal(t, 0, out.LineasCount, "un recuento sin artículos activos queda vacío pero existe")
}
