package messages

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Harishrk21/sudind-connect-sub000/internal/auth"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/validation"
)

type Handler struct {
	st *store.Store
}

func NewHandler(st *store.Store) *Handler { return &Handler{st: st} }

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	CaseID     string `json:"case_id"`
	Text       string `json:"text" validate:"required,min=1,max=2000"`
}

// @Summary      Send message
// @Tags         messages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  SendMessageRequest  true  "Message payload"
// @Success      201  {object}  models.Message
// @Failure      400  {object}  models.ValidationErrorResponse
// @Router       /messages [post]
func (h *Handler) Send(c *fiber.Ctx) error {
	var in SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	if _, err := h.st.UserByID(in.ReceiverID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unknown receiver_id")
	}

	m := h.st.AddMessage(store.MessageInput{
		SenderID:   auth.MustUserID(c),
		ReceiverID: in.ReceiverID,
		CaseID:     strings.TrimSpace(in.CaseID),
		Text:       strings.TrimSpace(in.Text),
	})
	return c.Status(fiber.StatusCreated).JSON(m)
}

// @Summary      Inbox
// @Description  Every message the user has sent or received
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Message
// @Router       /messages [get]
func (h *Handler) Inbox(c *fiber.Ctx) error {
	return c.JSON(h.st.MessagesForUser(auth.MustUserID(c)))
}

// @Summary      Conversation
// @Description  Messages exchanged with one other user, in send order
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path  string  true  "other user id"
// @Success      200  {array}  models.Message
// @Router       /messages/with/{userID} [get]
func (h *Handler) Conversation(c *fiber.Ctx) error {
	return c.JSON(h.st.Conversation(auth.MustUserID(c), c.Params("userID")))
}

// @Summary      Mark message read
// @Description  Only the receiver may flip the read flag
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "message id"
// @Success      200  {object}  models.Message
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /messages/{id}/read [post]
func (h *Handler) MarkRead(c *fiber.Ctx) error {
	m, err := h.st.MessageByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	if m.ReceiverID != auth.MustUserID(c) {
		return fiber.ErrForbidden
	}
	read, err := h.st.MarkMessageRead(m.MsgID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(read)
}

// @Summary      Unread count
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]int  "unread"
// @Router       /messages/unread-count [get]
func (h *Handler) UnreadCount(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"unread": h.st.UnreadMessageCount(auth.MustUserID(c))})
}
