package notifications

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Harishrk21/sudind-connect-sub000/internal/auth"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
)

type Handler struct {
	st *store.Store
}

func NewHandler(st *store.Store) *Handler { return &Handler{st: st} }

// @Summary      List notifications
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Notification
// @Router       /notifications [get]
func (h *Handler) List(c *fiber.Ctx) error {
	return c.JSON(h.st.NotificationsForUser(auth.MustUserID(c)))
}

// @Summary      Mark notification read
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "notification id"
// @Success      200  {object}  models.Notification
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /notifications/{id}/read [post]
func (h *Handler) MarkRead(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)

	// Load first so we never flip another user's notification.
	for _, n := range h.st.NotificationsForUser(userID) {
		if n.ID != c.Params("id") {
			continue
		}
		read, err := h.st.MarkNotificationRead(n.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.ErrNotFound
			}
			return fiber.ErrInternalServerError
		}
		return c.JSON(read)
	}
	return fiber.ErrNotFound
}

// @Summary      Mark all notifications read
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]int  "marked"
// @Router       /notifications/read-all [post]
func (h *Handler) MarkAllRead(c *fiber.Ctx) error {
	n := h.st.MarkAllNotificationsRead(auth.MustUserID(c))
	return c.JSON(fiber.Map{"marked": n})
}
