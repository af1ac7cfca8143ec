package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paisa-pay/paisa_pay/internal/profile"
)

// RegisterProfileRoutes wires profile endpoints.
func RegisterProfileRoutes(r fiber.Router, h *profile.Handler) {
	r.Get("/profile", h.Get)
	r.Put("/profile", h.Update)
}
