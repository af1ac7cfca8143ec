package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paisa-pay/paisa_pay/internal/balance"
)

// RegisterBalanceRoutes wires balance endpoints.
func RegisterBalanceRoutes(r fiber.Router, h *balance.Handler) {
	r.Get("/balance", h.Get)
}
