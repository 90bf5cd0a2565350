package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/application/reporting"
	"github.com/nixnvs/blossomstock-web/internal/application/status"
	"github.com/nixnvs/blossomstock-web/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	ReportUC    *usecase.ReportUseCase
	AdminUC     *usecase.AdminUseCase
	OpenUC      *recuento.OpenUseCase
	LifecycleUC *recuento.LifecycleUseCase
	ReporteUC   *reporting.ReporteUseCase
	StatusUC    *status.StockStatusUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de artículos
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Partes de empleados
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/", reportHandler.List)
	reports.Post("/", reportHandler.Create)
	reports.Get("/export", reportHandler.ExportCSV)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Delete("/:id", reportHandler.Delete)

	// Recuentos mensuales
	recuentos := api.Group("/recuentos")
	recuentoHandler := NewRecuentoHandler(deps.OpenUC, deps.LifecycleUC)
	recuentos.Post("/", recuentoHandler.Open)
	recuentos.Get("/", recuentoHandler.List)
	recuentos.Get("/cerrados", recuentoHandler.ListCerrados)
	recuentos.Put("/:id", recuentoHandler.UpdateEstado)
	recuentos.Delete("/:id", recuentoHandler.Delete)
	recuentos.Get("/:id/lineas", recuentoHandler.Lines)
	recuentos.Put("/:id/lineas", recuentoHandler.EditLine)

	// Reporte de reposición (solo recuentos cerrados)
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	recuentos.Get("/:id/reporte", reporteHandler.Get)
	recuentos.Post("/:id/reporte", reporteHandler.Action)

	// Panel de estado de stock
	statusHandler := NewStatusHandler(deps.StatusUC)
	api.Get("/stock-status", statusHandler.Get)

	// Administración
	adminHandler := NewAdminHandler(deps.AdminUC)
	api.Post("/admin/reset-database", adminHandler.Reset)
}
