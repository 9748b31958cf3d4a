package contracts

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

type CreateContractRequest struct {
	CaseID    string `json:"case_id" validate:"required"`
	Title     string `json:"title" validate:"required,max=120"`
	Terms     string `json:"terms" validate:"required,max=5000"`
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // YYYY-MM-DD
}

type UpdateContractRequest struct {
	Title  *string `json:"title" validate:"omitempty,max=120"`
	Terms  *string `json:"terms" validate:"omitempty,max=5000"`
	Status *string `json:"status" validate:"omitempty,oneof=draft active expired archived"`
}

/* ============================== Handlers ================================ */

// @Summary      Create contract
// @Description  Admin drafts a contract against a case; client and agent are taken from the case
// @Tags         contracts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateContractRequest  true  "Contract payload"
// @Success      201  {object}  models.Contract
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /contracts [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return fiber.NewError(fiber.StatusBadRequest, "end_date must not precede start_date")
	}

	cs, err := h.st.CaseByID(in.CaseID)
	if err != nil {
		return fiber.ErrNotFound
	}

	ct, err := h.st.AddContract(store.ContractInput{
		CaseID:    cs.CaseID,
		ClientID:  cs.ClientID,
		AgentID:   cs.AgentID,
		Type:      cs.Type,
		Title:     in.Title,
		Terms:     in.Terms,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}

	h.notify.Push(cs.ClientID, "Contract drafted",
		"Contract "+ct.ContractID+" has been drafted for your case "+cs.CaseID+".",
		models.NotifyInfo)
	return c.Status(fiber.StatusCreated).JSON(ct)
}

// @Summary      List all contracts
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Contract
// @Router       /contracts [get]
func (h *Handler) ListAll(c *fiber.Ctx) error {
	return c.JSON(h.st.Contracts())
}

// @Summary      List my contracts
// @Description  Client lists contracts on their cases
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Contract
// @Router       /contracts/mine [get]
func (h *Handler) ListMine(c *fiber.Ctx) error {
	return c.JSON(h.st.ContractsByClient(auth.MustUserID(c)))
}

// @Summary      Update contract
// @Description  Admin edits title, terms, or status
// @Tags         contracts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "contract id"
// @Param        payload  body  UpdateContractRequest  true  "Fields to change"
// @Success      200  {object}  models.Contract
// @Failure      404  {object}  models.ErrorResponse
// @Router       /contracts/{id} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	var in UpdateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	patch := store.ContractPatch{Title: in.Title, Terms: in.Terms}
	if in.Status != nil {
		st := models.ContractStatus(*in.Status)
		patch.Status = &st
	}

	ct, err := h.st.UpdateContract(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(ct)
}

// @Summary      Archive contract
// @Description  Sets status archived and stamps archived_at; repeating the call restamps it
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "contract id"
// @Success      200  {object}  models.Contract
// @Failure      404  {object}  models.ErrorResponse
// @Router       /contracts/{id}/archive [post]
func (h *Handler) Archive(c *fiber.Ctx) error {
	ct, err := h.st.ArchiveContract(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(ct)
}
