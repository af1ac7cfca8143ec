package balance

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes balance HTTP endpoints.
type Handler struct {
	store *Store
}

// NewHandler builds a balance HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Get returns the wallet balance, masked unless reveal=true.
func (h *Handler) Get(c *fiber.Ctx) error {
	reveal := c.QueryBool("reveal", false)

	resp := fiber.Map{
		"display": h.store.FormatMasked(reveal),
	}
	if reveal {
		resp["amount"] = h.store.Read().StringFixed(2)
	}
	return c.Status(http.StatusOK).JSON(resp)
}
