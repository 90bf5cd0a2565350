package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/application/usecase"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
	"github.com/nixnvs/blossomstock-web/internal/testutil"
)

func montarReports(t *testing.T) (*testutil.FakeTxRunner, *usecase.ReportUseCase, *dto.ItemResponse) {
	t.Helper()
	tx := testutil.NewFakeTxRunner()
	itemUC := usecase.NewItemUseCase(tx.ItemRepo, tx)
	item := crearItem(t, itemUC, "Plato llano", "Platos")
	return tx, usecase.NewReportUseCase(tx.ReportRepo, tx.ItemRepo), item
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestReportCreate_OK(t *testing.T) {
	_, uc, item := montarReports(t)

	out, err := uc.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: item.ID,
		Cantidad:   intPtr(4),
		Notas:      "faltan dos en barra",
	})
	require.NoError(t, err)

	assert.Equal(t, "Plato llano", out.ArticuloNombre, "el nombre se copia del catálogo")
	assert.Equal(t, "Platos", out.Categoria)
	assert.True(t, out.PrecioUnidad.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, out.Costo.Equal(decimal.RequireFromString("10.00")), "costo = cantidad × precio")
	assert.Equal(t, time.Now().Format("2006-01"), out.Mes, "el mes sale del reloj del servidor")
}

func TestReportCreate_ArticuloInexistente(t *testing.T) {
	_, uc, _ := montarReports(t)

	_, err := uc.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: 9999,
		Cantidad:   intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportCreate_ArticuloInactivo(t *testing.T) {
	tx, uc, item := montarReports(t)
	itemUC := usecase.NewItemUseCase(tx.ItemRepo, tx)
	_, err := itemUC.Update(context.Background(), item.ID, dto.UpdateItemRequest{Activo: boolPtr(false)})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: item.ID,
		Cantidad:   intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportCreate_CategoriaNoCoincide(t *testing.T) {
	_, uc, item := montarReports(t)

	_, err := uc.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: item.ID,
		Categoria:  "Copas",
		Cantidad:   intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportCreate_CantidadPositivaRequerida(t *testing.T) {
	_, uc, item := montarReports(t)

	_, err := uc.Create(context.Background(), dto.CreateReportRequest{ArticuloID: item.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cantidad no hay parte")

	for _, cantidad := range []int{0, -3} {
		_, err = uc.Create(context.Background(), dto.CreateReportRequest{
			ArticuloID: item.ID,
			Cantidad:   intPtr(cantidad),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe ser rechazada", cantidad)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// List + stats
// ──────────────────────────────────────────────────────────────────────────────

func TestReportList_ConStatsDelMes(t *testing.T) {
	_, uc, item := montarReports(t)
	mes := time.Now().Format("2006-01")

	for _, c := range []int{2, 3} {
		_, err := uc.Create(context.Background(), dto.CreateReportRequest{
			ArticuloID: item.ID,
			Cantidad:   intPtr(c),
		})
		require.NoError(t, err)
	}

	out, err := uc.List(context.Background(), repository.ReportFilter{Mes: mes})
	require.NoError(t, err)

	assert.Len(t, out.Reports, 2)
	require.NotNil(t, out.MonthlyStats)
	assert.Equal(t, 2, out.MonthlyStats.TotalReportes)
	assert.True(t, out.MonthlyStats.TotalCosto.Equal(decimal.RequireFromString("12.50")),
		"2×2.50 + 3×2.50 = 12.50")
	require.Len(t, out.CategoryStats, 1)
	assert.Equal(t, "Platos", out.CategoryStats[0].Categoria)
}

func TestReportList_SinMes_SinStatsMensuales(t *testing.T) {
	_, uc, item := montarReports(t)
	_, err := uc.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: item.ID,
		Cantidad:   intPtr(1),
	})
	require.NoError(t, err)

	out, err := uc.List(context.Background(), repository.ReportFilter{})
	require.NoError(t, err)
	assert.Nil(t, out.MonthlyStats)
	assert.Len(t, out.Reports, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete y export
// ──────────────────────────────────────────────────────────────────────────────

func TestReportDelete_DevuelveElBorrado(t *testing.T) {
	_, uc, item := montarReports(t)
	created, err := uc.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: item.ID,
		Cantidad:   intPtr(2),
	})
	require.NoError(t, err)

	out, err := uc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)

	_, err = uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportExportCSV_Contenido(t *testing.T) {
	_, uc, item := montarReports(t)
	_, err := uc.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: item.ID,
		Cantidad:   intPtr(4),
	})
	require.NoError(t, err)

	out, err := uc.ExportCSV(context.Background(), repository.ReportFilter{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Filename, "blossom-reportes-"))
	assert.True(t, strings.HasSuffix(out.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(out.Body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"Categoría,Artículo,Cantidad,Precio Unitario (€),Costo Total (€),Fecha Reporte,Mes,Notas",
		lines[0])
	assert.Contains(t, lines[1], "Platos,Plato llano,4,2.50,10.00")
}

func TestReportExportCSV_SinResultados(t *testing.T) {
	_, uc, _ := montarReports(t)

	_, err := uc.ExportCSV(context.Background(), repository.ReportFilter{Mes: "1999-01"})
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reset administrativo
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminReset_ConfirmacionIncorrecta(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := usecase.NewAdminUseCase(tx)

	for _, frase := range []string{"", "borrar todo", "BORRAR", "SÍ"} {
		err := uc.Reset(context.Background(), frase)
		assert.ErrorIs(t, err, domain.ErrForbidden, "frase %q no debe confirmar el reset", frase)
	}
}

func TestAdminReset_BorraTodo(t *testing.T) {
	tx, reportUC, item := montarReports(t)
	_, err := reportUC.Create(context.Background(), dto.CreateReportRequest{
		ArticuloID: item.ID,
		Cantidad:   intPtr(2),
	})
	require.NoError(t, err)

	uc := usecase.NewAdminUseCase(tx)
	require.NoError(t, uc.Reset(context.Background(), "BORRAR TODO"))

	items, _ := tx.ItemRepo.List(context.Background(), repository.ItemFilter{})
	assert.Empty(t, items)
	assert.Empty(t, tx.ReportRepo.Reports)
	assert.Empty(t, tx.RecuentoRepo.Recuentos)
}
