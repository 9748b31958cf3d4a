package cases

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Harishrk21/sudind-connect-sub000/internal/auth"
	"github.com/Harishrk21/sudind-connect-sub000/internal/notify"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/lifecycle"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/sanitize"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/validation"
)

// ===== DTOs =====

type CreateCaseRequest struct {
	Type               string `json:"type" validate:"required,oneof=medical academic"`
	Title              string `json:"title" validate:"required,max=120"`
	Description        string `json:"description" validate:"max=2000"`
	EstimatedCostCents int64  `json:"estimated_cost_cents" validate:"omitempty,gte=0"`
	Hospital           string `json:"hospital" validate:"max=120"`
	University         string `json:"university" validate:"max=120"`
	// Admin only; clients always create for themselves.
	ClientID string `json:"client_id"`
	AgentID  string `json:"agent_id"`
}

type UpdateCaseRequest struct {
	Title              *string `json:"title" validate:"omitempty,max=120"`
	Description        *string `json:"description" validate:"omitempty,max=2000"`
	EstimatedCostCents *int64  `json:"estimated_cost_cents" validate:"omitempty,gte=0"`
	Hospital           *string `json:"hospital" validate:"omitempty,max=120"`
	University         *string `json:"university" validate:"omitempty,max=120"`
	AgentID            *string `json:"agent_id"` // admin only
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Force  bool   `json:"force"` // honored for admins only
}

type Handler struct {
	st     *store.Store
	notify *notify.Service
}

func NewHandler(st *store.Store, n *notify.Service) *Handler {
	return &Handler{st: st, notify: n}
}

func parsePage(c *fiber.Ctx) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	size, _ = strconv.Atoi(c.Query("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 50 {
		size = 10
	}
	return
}

// paginate slices a full result set and wraps it in the standard page shape.
func paginate[T any](c *fiber.Ctx, items []T) error {
	page, size := parsePage(c)
	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	window := items[start:end]
	if window == nil {
		window = []T{}
	}
	return c.JSON(fiber.Map{
		"page": page, "pageSize": size, "total": total,
		"pages": int(math.Ceil(float64(total) / float64(size))),
		"items": window,
	})
}

// canSee reports whether the requester may read a case: admins always,
// clients their own, agents their assignments.
func canSee(c models.Case, userID, role string) bool {
	switch models.Role(role) {
	case models.RoleAdmin:
		return true
	case models.RoleClient:
		return c.ClientID == userID
	case models.RoleAgent:
		return c.AgentID == userID
	}
	return false
}

// Create Case godoc
// @Summary      Create case
// @Description  Client opens a case for themselves; admin may open one for any client
// @Tags         cases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateCaseRequest  true  "Case payload"
// @Success      201  {object}  models.Case
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /cases [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	// Hospital belongs to medical cases, university to academic ones.
	typ := models.CaseType(in.Type)
	if typ == models.CaseMedical && in.University != "" {
		return fiber.NewError(fiber.StatusBadRequest, "university is not valid on a medical case")
	}
	if typ == models.CaseAcademic && in.Hospital != "" {
		return fiber.NewError(fiber.StatusBadRequest, "hospital is not valid on an academic case")
	}

	userID := auth.MustUserID(c)
	role := auth.MustRole(c)

	clientID := userID
	agentID := ""
	if models.Role(role) == models.RoleAdmin {
		if strings.TrimSpace(in.ClientID) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client_id is required")
		}
		clientID = in.ClientID
		agentID = in.AgentID
		if _, err := h.st.UserByID(clientID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unknown client_id")
		}
	}

	cs, err := h.st.AddCase(store.CaseInput{
		ClientID:           clientID,
		AgentID:            agentID,
		Type:               typ,
		Title:              strings.TrimSpace(in.Title),
		Description:        strings.TrimSpace(in.Description),
		EstimatedCostCents: in.EstimatedCostCents,
		Hospital:           strings.TrimSpace(in.Hospital),
		University:         strings.TrimSpace(in.University),
	}, userID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(cs)
}

// List My Cases godoc
// @Summary      List my cases
// @Description  Client lists their own cases (paginated)
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  map[string]any
// @Router       /cases/mine [get]
func (h *Handler) ListMine(c *fiber.Ctx) error {
	return paginate(c, h.st.CasesByClient(auth.MustUserID(c)))
}

// @Summary      List assigned cases
// @Description  Agent lists the cases assigned to them (paginated)
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /cases/assigned [get]
func (h *Handler) ListAssigned(c *fiber.Ctx) error {
	return paginate(c, h.st.CasesByAgent(auth.MustUserID(c)))
}

// @Summary      List all cases
// @Description  Admin lists every case (paginated)
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /cases [get]
func (h *Handler) ListAll(c *fiber.Ctx) error {
	return paginate(c, h.st.Cases())
}

// PoolItem is the agent-facing view of an unassigned case: client identity
// and contact details are withheld until the case is claimed.
type PoolItem struct {
	CaseID  string          `json:"case_id"`
	Type    models.CaseType `json:"type"`
	Title   string          `json:"title"`
	Preview string          `json:"preview"`
}

// @Summary      Case pool
// @Description  Agent browses unassigned cases with PII-redacted previews
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /cases/pool [get]
func (h *Handler) Pool(c *fiber.Ctx) error {
	pool := h.st.UnassignedCases()
	items := make([]PoolItem, 0, len(pool))
	for _, cs := range pool {
		items = append(items, PoolItem{
			CaseID:  cs.CaseID,
			Type:    cs.Type,
			Title:   cs.Title,
			Preview: sanitize.Summary(sanitize.RedactPII(cs.Description), 240),
		})
	}
	return paginate(c, items)
}

// @Summary      Claim case
// @Description  Agent takes an unassigned case from the pool
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "case id"
// @Success      200  {object}  models.Case
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "already assigned"
// @Router       /cases/{id}/claim [post]
func (h *Handler) Claim(c *fiber.Ctx) error {
	agentID := auth.MustUserID(c)
	cs, err := h.st.CaseByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if cs.AgentID != "" {
		return fiber.NewError(fiber.StatusConflict, "case is already assigned")
	}
	updated, err := h.st.UpdateCase(cs.CaseID, store.CasePatch{AgentID: &agentID})
	if err != nil {
		return fiber.ErrInternalServerError
	}
	h.notify.Push(cs.ClientID, "Agent assigned",
		"An agent has been assigned to your case "+cs.CaseID+".", models.NotifyInfo)
	return c.JSON(updated)
}

// @Summary      Case detail
// @Description  Owner, assigned agent, or admin reads a case with its timeline
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "case id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id} [get]
func (h *Handler) GetDetail(c *fiber.Ctx) error {
	cs, err := h.st.CaseByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if !canSee(cs, auth.MustUserID(c), auth.MustRole(c)) {
		return fiber.ErrForbidden
	}
	return c.JSON(fiber.Map{
		"case":      cs,
		"progress":  lifecycle.ProgressPercent(cs.Status, cs.Type),
		"documents": h.st.DocumentsByCase(cs.CaseID),
		"invoices":  h.st.InvoicesByCase(cs.CaseID),
	})
}

// @Summary      Update case
// @Description  Admin or the assigned agent edits case fields
// @Tags         cases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "case id"
// @Param        payload  body  UpdateCaseRequest  true  "Fields to change"
// @Success      200  {object}  models.Case
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	var in UpdateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	cs, err := h.st.CaseByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	role := models.Role(auth.MustRole(c))
	userID := auth.MustUserID(c)
	if role != models.RoleAdmin && !(role == models.RoleAgent && cs.AgentID == userID) {
		return fiber.ErrForbidden
	}
	if in.AgentID != nil && role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "only admins may reassign cases")
	}
	if in.Hospital != nil && cs.Type != models.CaseMedical {
		return fiber.NewError(fiber.StatusBadRequest, "hospital is not valid on an academic case")
	}
	if in.University != nil && cs.Type != models.CaseAcademic {
		return fiber.NewError(fiber.StatusBadRequest, "university is not valid on a medical case")
	}

	updated, err := h.st.UpdateCase(cs.CaseID, store.CasePatch{
		AgentID:            in.AgentID,
		Title:              in.Title,
		Description:        in.Description,
		EstimatedCostCents: in.EstimatedCostCents,
		Hospital:           in.Hospital,
		University:         in.University,
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(updated)
}

// @Summary      Update case status
// @Description  Assigned agent moves the case forward; admin may force any status
// @Tags         cases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "case id"
// @Param        payload  body  UpdateStatusRequest  true  "New status"
// @Success      200  {object}  models.Case
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "invalid transition"
// @Router       /cases/{id}/status [post]
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var in UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	cs, err := h.st.CaseByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	role := models.Role(auth.MustRole(c))
	userID := auth.MustUserID(c)
	if role != models.RoleAdmin && !(role == models.RoleAgent && cs.AgentID == userID) {
		return fiber.ErrForbidden
	}
	force := in.Force && role == models.RoleAdmin

	updated, err := h.st.UpdateCaseStatus(cs.CaseID, models.CaseStatus(in.Status), userID, force)
	if err != nil {
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	h.notify.Push(updated.ClientID, "Case status updated",
		"Your case "+updated.CaseID+" is now: "+lifecycle.Label(updated.Status)+".",
		models.NotifySuccess)
	return c.JSON(updated)
}

// @Summary      Case timeline
// @Description  Render the six lifecycle steps with done/current flags and progress
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "case id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id}/timeline [get]
func (h *Handler) Timeline(c *fiber.Ctx) error {
	cs, err := h.st.CaseByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if !canSee(cs, auth.MustUserID(c), auth.MustRole(c)) {
		return fiber.ErrForbidden
	}
	return c.JSON(fiber.Map{
		"case_id":  cs.CaseID,
		"status":   cs.Status,
		"progress": lifecycle.ProgressPercent(cs.Status, cs.Type),
		"steps":    lifecycle.Timeline(cs.Status, cs.Type),
	})
}

// @Summary      Case history
// @Description  Audit trail of status changes, oldest first
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "case id"
// @Success      200  {array}  models.CaseHistory
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id}/history [get]
func (h *Handler) History(c *fiber.Ctx) error {
	cs, err := h.st.CaseByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if !canSee(cs, auth.MustUserID(c), auth.MustRole(c)) {
		return fiber.ErrForbidden
	}
	return c.JSON(h.st.HistoryForCase(cs.CaseID))
}

// @Summary      Delete case
// @Description  Admin removes a case; documents, invoices, and contracts that reference it are left behind
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "case id"
// @Success      204  "no content"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.st.DeleteCase(c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// @Summary      My clients
// @Description  Agent lists the distinct clients behind their assigned cases
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /clients/mine [get]
func (h *Handler) ClientsMine(c *fiber.Ctx) error {
	return c.JSON(h.st.ClientsOfAgent(auth.MustUserID(c)))
}
