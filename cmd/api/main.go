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

	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/domain/stock"
	"github.com/jhoicas/pos-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/pos-ledger/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/pos-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-ledger/internal/interfaces/http"
	"github.com/jhoicas/pos-ledger/pkg/config"
	"github.com/jhoicas/pos-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Int("low_stock_threshold", cfg.Ledger.LowStockThreshold).
		Msg("iniciando aplicación")

	classifier, err := stock.NewClassifier(cfg.Ledger.LowStockThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("umbral de stock bajo")
	}

	ctx := context.Background()
	var txRunner inventory.TxRunner
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		txRunner = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		txRunner = postgres.NewTxRunner(pool)
	}

	var recorder inventory.Recorder = inventory.NopRecorder{}
	var metricsRecorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		metricsRecorder = metrics.NewRecorder()
		recorder = metricsRecorder
	}

	ledger := inventory.NewLedger(txRunner, classifier, recorder, log)
	grnDocument := inventory.NewGRNDocumentUseCase(txRunner, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	if cfg.Ledger.ReconcileOnStart {
		if _, err := ledger.Reconcile(ctx); err != nil {
			log.Error().Err(err).Msg("reconciliación inicial")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledger,
		GRNDocument: grnDocument,
		Metrics:     metricsRecorder,
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
