package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *inventory.Ledger
	GRNDocument *inventory.GRNDocumentUseCase
	Metrics     *metrics.Recorder // nil deshabilita /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Ventas y devoluciones
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Ledger)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Post("/:id/returns", saleHandler.Return)

	// Recepción de mercancía
	grn := api.Group("/grn-notes")
	grnHandler := NewGRNHandler(deps.Ledger, deps.GRNDocument)
	grn.Post("/", grnHandler.Create)
	grn.Get("/:id", grnHandler.GetByID)
	grn.Get("/:id/pdf", grnHandler.PDF)

	// Stock (rutas fijas antes de /:id)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stock.Get("/low", stockHandler.ListLow)
	stock.Post("/reconcile", stockHandler.Reconcile)
	stock.Get("/:id", stockHandler.Get)
	stock.Put("/:id", stockHandler.Adjust)
	stock.Post("/:id/debit", stockHandler.Debit)
	stock.Post("/:id/credit", stockHandler.Credit)
}
