package invoices

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Harishrk21/sudind-connect-sub000/internal/auth"
	"github.com/Harishrk21/sudind-connect-sub000/internal/notify"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/validation"
)

type Handler struct {
	st     *store.Store
	notify *notify.Service
}

func NewHandler(st *store.Store, n *notify.Service) *Handler {
	return &Handler{st: st, notify: n}
}

/* ================================ DTOs ================================= */

type CreateInvoiceRequest struct {
	CaseID      string `json:"case_id" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Description string `json:"description" validate:"max=500"`
	DueDate     string `json:"due_date" validate:"required"` // YYYY-MM-DD
}

/* ============================== Handlers ================================ */

// @Summary      Issue invoice
// @Description  Admin or the assigned agent bills the case's client
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateInvoiceRequest  true  "Invoice payload"
// @Success      201  {object}  models.Invoice
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /invoices [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	due, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
	}

	cs, err := h.st.CaseByID(in.CaseID)
	if err != nil {
		return fiber.ErrNotFound
	}
	role := models.Role(auth.MustRole(c))
	if role == models.RoleAgent && cs.AgentID != auth.MustUserID(c) {
		return fiber.ErrForbidden
	}

	inv, err := h.st.AddInvoice(store.InvoiceInput{
		CaseID:      cs.CaseID,
		ClientID:    cs.ClientID,
		AmountCents: in.AmountCents,
		Currency:    in.Currency,
		Description: in.Description,
		DueDate:     due,
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}

	h.notify.Push(cs.ClientID, "Invoice issued",
		"Invoice "+inv.InvoiceID+" has been issued for your case "+cs.CaseID+".",
		models.NotifyInfo)
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// @Summary      List all invoices
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Invoice
// @Router       /invoices [get]
func (h *Handler) ListAll(c *fiber.Ctx) error {
	return c.JSON(h.st.Invoices())
}

// @Summary      List my invoices
// @Description  Client lists invoices billed to them
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Invoice
// @Router       /invoices/mine [get]
func (h *Handler) ListMine(c *fiber.Ctx) error {
	return c.JSON(h.st.InvoicesByClient(auth.MustUserID(c)))
}

// @Summary      List case invoices
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "case id"
// @Success      200  {array}   models.Invoice
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id}/invoices [get]
func (h *Handler) ListByCase(c *fiber.Ctx) error {
	cs, err := h.st.CaseByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	userID := auth.MustUserID(c)
	switch models.Role(auth.MustRole(c)) {
	case models.RoleAdmin:
	case models.RoleClient:
		if cs.ClientID != userID {
			return fiber.ErrForbidden
		}
	case models.RoleAgent:
		if cs.AgentID != userID {
			return fiber.ErrForbidden
		}
	}
	return c.JSON(h.st.InvoicesByCase(cs.CaseID))
}

// @Summary      Mark invoice paid
// @Description  Stamps paid_at; repeating the call is idempotent apart from restamping paid_at
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "invoice id"
// @Success      200  {object}  models.Invoice
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /invoices/{id}/pay [post]
func (h *Handler) Pay(c *fiber.Ctx) error {
	inv, err := h.st.InvoiceByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	// Clients may settle their own invoices; admins may settle any.
	userID := auth.MustUserID(c)
	role := models.Role(auth.MustRole(c))
	if role != models.RoleAdmin && inv.ClientID != userID {
		return fiber.ErrForbidden
	}

	paid, err := h.st.MarkInvoicePaid(inv.InvoiceID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	h.notify.Push(paid.ClientID, "Payment received",
		"Invoice "+paid.InvoiceID+" has been marked paid.", models.NotifySuccess)
	return c.JSON(paid)
}

// @Summary      Sweep overdue invoices
// @Description  Admin flips pending invoices past their due date to overdue; nothing triggers this automatically
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]int  "flipped"
// @Router       /invoices/sweep-overdue [post]
func (h *Handler) SweepOverdue(c *fiber.Ctx) error {
	n := h.st.SweepOverdueInvoices(time.Now().UTC())
	return c.JSON(fiber.Map{"flipped": n})
}
