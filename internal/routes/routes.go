package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/paisa-pay/paisa_pay/internal/balance"
	"github.com/paisa-pay/paisa_pay/internal/checkout"
	"github.com/paisa-pay/paisa_pay/internal/config"
	"github.com/paisa-pay/paisa_pay/internal/ledger"
	"github.com/paisa-pay/paisa_pay/internal/middleware"
	"github.com/paisa-pay/paisa_pay/internal/notification"
	"github.com/paisa-pay/paisa_pay/internal/profile"
	"github.com/paisa-pay/paisa_pay/internal/qr"
	"github.com/paisa-pay/paisa_pay/internal/storage"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Store  storage.Storage
	Logger *slog.Logger
}

// Setup configures middlewares, builds the session stores and wires all
// application routes.
func Setup(app *fiber.App, d Deps) error {
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(middleware.Idempotency(d.Store, d.Cfg.IdempotencyTTL, d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Session stores and services
	ctx := context.Background()

	balanceStore := balance.NewStore(d.Cfg.SeedBalance)

	ledgerStore := ledger.NewStore(d.Store)
	if err := ledgerStore.Initialize(ctx); err != nil {
		return err
	}

	profileStore := profile.NewStore(d.Store)
	if err := profileStore.Initialize(ctx); err != nil {
		return err
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	coordinator := checkout.NewCoordinator(balanceStore, ledgerStore, notifier, d.Logger, d.Cfg.ProcessingDelay)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterBalanceRoutes(api, balance.NewHandler(balanceStore))
	RegisterCheckoutRoutes(api, checkout.NewHandler(coordinator, d.Logger))
	RegisterHistoryRoutes(api, ledger.NewHandler(ledgerStore))
	RegisterProfileRoutes(api, profile.NewHandler(profileStore))
	RegisterQRRoutes(api, qr.NewHandler())

	return nil
}
