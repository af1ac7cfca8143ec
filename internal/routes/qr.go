package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paisa-pay/paisa_pay/internal/qr"
)

// RegisterQRRoutes wires scan-to-pay payload endpoints.
func RegisterQRRoutes(r fiber.Router, h *qr.Handler) {
	r.Post("/qr/generate", h.Generate)
	r.Post("/qr/decode", h.Decode)
}
