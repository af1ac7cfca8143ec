package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/paisa-pay/paisa_pay/internal/balance"
	"github.com/paisa-pay/paisa_pay/internal/ledger"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	coordinator *Coordinator
	logger      *slog.Logger
}

// NewHandler builds a checkout HTTP handler.
func NewHandler(coordinator *Coordinator, logger *slog.Logger) *Handler {
	return &Handler{coordinator: coordinator, logger: logger}
}

// Submit processes one checkout attempt.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := h.coordinator.Submit(c.UserContext(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(http.StatusBadRequest, verr.Error())
		}

		var ife *balance.InsufficientFundsError
		if errors.As(err, &ife) {
			return c.Status(http.StatusPaymentRequired).JSON(fiber.Map{
				"error":     "insufficient balance",
				"balance":   ife.Balance.StringFixed(2),
				"required":  ife.Required.StringFixed(2),
				"shortfall": ife.Shortfall.StringFixed(2),
			})
		}

		var perr *ledger.PersistenceError
		if errors.As(err, &perr) {
			// The balance moved and the entry is in memory; telling the
			// user the payment failed would be wrong. Log and report
			// success.
			h.logger.Warn("history write deferred", "error", perr)
			return c.Status(http.StatusCreated).JSON(result)
		}

		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(result)
}
