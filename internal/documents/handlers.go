package documents

import (
	"errors"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/Harishrk21/sudind-connect-sub000/internal/auth"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
)

type Handler struct {
	st *store.Store
}

func NewHandler(st *store.Store) *Handler { return &Handler{st: st} }

// caseAccess loads the case and checks the requester may touch it: admins
// always, the owning client, or the assigned agent.
func (h *Handler) caseAccess(c *fiber.Ctx, caseID string) (models.Case, error) {
	cs, err := h.st.CaseByID(caseID)
	if err != nil {
		return models.Case{}, fiber.ErrNotFound
	}
	userID := auth.MustUserID(c)
	switch models.Role(auth.MustRole(c)) {
	case models.RoleAdmin:
	case models.RoleClient:
		if cs.ClientID != userID {
			return models.Case{}, fiber.ErrForbidden
		}
	case models.RoleAgent:
		if cs.AgentID != userID {
			return models.Case{}, fiber.ErrForbidden
		}
	default:
		return models.Case{}, fiber.ErrForbidden
	}
	return cs, nil
}

// Upload Case Documents godoc
// @Summary      Upload case documents (PDF/PNG/JPEG)
// @Description  Owner, assigned agent, or admin uploads up to 10 files; only metadata is kept
// @Tags         documents
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string   true  "case id"
// @Param        files  formData  []file   true  "PDF/PNG/JPEG (max 10)"
// @Success      201    {object}  map[string]any  "results"
// @Failure      400    {object}  models.ErrorResponse
// @Failure      403    {object}  models.ErrorResponse
// @Router       /cases/{id}/documents [post]
func (h *Handler) Upload(c *fiber.Ctx) error {
	cs, err := h.caseAccess(c, c.Params("id"))
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form required; use files[]")
	}
	files := form.File["files[]"]
	if len(files) == 0 {
		files = form.File["files"]
	}
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "files are required (use key: files[])")
	}
	if len(files) > 10 {
		return fiber.NewError(fiber.StatusBadRequest, "max 10 files allowed")
	}

	userID := auth.MustUserID(c)
	role := models.Role(auth.MustRole(c))
	results := make([]fiber.Map, 0, len(files))

	for _, fh := range files {
		res := fiber.Map{
			"name": fh.Filename,
			"size": fh.Size,
		}

		// ---- Per-file validation
		if fh.Size <= 0 {
			res["error"] = "empty file"
			results = append(results, res)
			continue
		}
		if fh.Size > 10*1024*1024 {
			res["error"] = "max 10MB per file"
			results = append(results, res)
			continue
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = mime.TypeByExtension(filepath.Ext(fh.Filename))
		}
		switch ct {
		case "application/pdf", "image/png", "image/jpeg":
			// ok
		default:
			res["error"] = "only PDF, PNG, or JPEG are allowed"
			results = append(results, res)
			continue
		}

		// There is no file storage backing this portal: record the metadata
		// and drop the content.
		rec := h.st.AddDocument(store.DocumentInput{
			CaseID:       cs.CaseID,
			UploaderID:   userID,
			UploaderRole: role,
			Type:         ct,
			Filename:     fh.Filename,
			Size:         fh.Size,
		})

		res["id"] = rec.DocID
		results = append(results, res)
	}

	// 201 even when some entries failed; clients check the per-item "error"
	// field.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"results": results})
}

// @Summary      List case documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "case id"
// @Success      200  {array}   models.Document
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id}/documents [get]
func (h *Handler) List(c *fiber.Ctx) error {
	cs, err := h.caseAccess(c, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(h.st.DocumentsByCase(cs.CaseID))
}

// @Summary      Delete document
// @Description  The uploader or an admin removes a document record
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "document id"
// @Success      204  "no content"
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /documents/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	doc, err := h.st.DocumentByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	userID := auth.MustUserID(c)
	role := models.Role(auth.MustRole(c))
	if role != models.RoleAdmin && doc.UploaderID != userID {
		return fiber.ErrForbidden
	}
	if err := h.st.DeleteDocument(doc.DocID); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}
