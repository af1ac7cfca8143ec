package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paisa-pay/paisa_pay/internal/checkout"
)

// RegisterCheckoutRoutes wires the checkout endpoint.
func RegisterCheckoutRoutes(r fiber.Router, h *checkout.Handler) {
	r.Post("/checkout", h.Submit)
}
