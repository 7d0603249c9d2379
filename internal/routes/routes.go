// Package routes defines the API routing configuration.
// It wires the ledger handlers behind the request-scoped connection middleware.
package routes

import (
	"fundsledger/internal/handlers"
	"fundsledger/internal/middleware"
	"fundsledger/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies are the services the routes are built from.
type Dependencies struct {
	Ledger  ledger.Service
	Conns   middleware.ConnManager
	Health  *handlers.HealthHandler
	Metrics prometheus.Gatherer
	Logger  *zap.Logger
}

// SetupRoutes configures all application routes.
// Every /api route runs on a connection acquired for that request only.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	app.Get("/health", deps.Health.Check)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	accountHandler := handlers.NewAccountHandler(deps.Ledger)
	transferHandler := handlers.NewTransferHandler(deps.Ledger)

	api := app.Group("/api", middleware.RequestConnection(deps.Conns, deps.Logger))

	accounts := api.Group("/accounts")
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.Get)

	api.Post("/transfers", transferHandler.Transfer)
}
