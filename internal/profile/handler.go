package profile

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes profile endpoints.
type Handler struct {
	store *Store
}

// NewHandler builds a profile HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Get returns the session profile.
func (h *Handler) Get(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.store.Get())
}

// Update replaces the session profile.
func (h *Handler) Update(c *fiber.Ctx) error {
	var p Profile
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.store.Update(c.UserContext(), p); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(h.store.Get())
}
