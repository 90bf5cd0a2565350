package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/application/reporting"
	"github.com/nixnvs/blossomstock-web/internal/application/status"
	"github.com/nixnvs/blossomstock-web/internal/application/usecase"
	infrapdf "github.com/nixnvs/blossomstock-web/internal/infrastructure/pdf"
	"github.com/nixnvs/blossomstock-web/internal/infrastructure/postgres"
	httpRouter "github.com/nixnvs/blossomstock-web/internal/interfaces/http"
	"github.com/nixnvs/blossomstock-web/pkg/config"
	"github.com/nixnvs/blossomstock-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	recuentoRepo := postgres.NewRecuentoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	itemUC := usecase.NewItemUseCase(itemRepo, txRunner)
	reportUC := usecase.NewReportUseCase(reportRepo, itemRepo)
	adminUC := usecase.NewAdminUseCase(txRunner)
	openUC := recuento.NewOpenUseCase(txRunner)
	lifecycleUC := recuento.NewLifecycleUseCase(recuentoRepo)
	reporteUC := reporting.NewReporteUseCase(recuentoRepo, pdfGenerator)
	statusUC := status.NewStockStatusUseCase(recuentoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Blossom Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		ReportUC:    reportUC,
		AdminUC:     adminUC,
		OpenUC:      openUC,
		LifecycleUC: lifecycleUC,
		ReporteUC:   reporteUC,
		StatusUC:    statusUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
