package ledger

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes payment history endpoints.
type Handler struct {
	store *Store
}

// NewHandler builds a history HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// List returns history entries filtered by category, optionally capped to
// the most recent N.
func (h *Handler) List(c *fiber.Ctx) error {
	category := Category(c.Query("category", string(CategoryAll)))
	limit := c.QueryInt("limit", 0)

	entries := h.store.ByCategory(category)
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []Entry{}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"category": category,
		"entries":  entries,
	})
}

// Grouped returns the full history bucketed by calendar date.
func (h *Handler) Grouped(c *fiber.Ctx) error {
	groups := GroupByDate(h.store.ByCategory(CategoryAll))
	return c.Status(http.StatusOK).JSON(groups)
}

// Clear irreversibly empties the payment history.
func (h *Handler) Clear(c *fiber.Ctx) error {
	if err := h.store.Clear(c.UserContext()); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
