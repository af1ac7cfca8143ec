package qr

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes QR payload endpoints.
type Handler struct{}

// NewHandler builds a QR HTTP handler.
func NewHandler() *Handler {
	return &Handler{}
}

type generateRequest struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
}

// Generate produces a scannable payload for receiving a payment.
func (h *Handler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	payload, reference, err := Generate(req.Recipient, req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"payload":   payload,
		"reference": reference,
	})
}

type decodeRequest struct {
	Payload string `json:"payload"`
}

// Decode parses a scanned payload into a payment request.
func (h *Handler) Decode(c *fiber.Ctx) error {
	var req decodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	decoded, err := Decode(req.Payload)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(decoded)
}
