package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paisa-pay/paisa_pay/internal/ledger"
)

// RegisterHistoryRoutes wires payment history endpoints.
func RegisterHistoryRoutes(r fiber.Router, h *ledger.Handler) {
	r.Get("/history", h.List)
	r.Get("/history/grouped", h.Grouped)
	r.Delete("/history", h.Clear)
}
