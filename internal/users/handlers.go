// Package users holds the admin-facing account management endpoints.
package users

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/validation"
)

type Handler struct {
	st *store.Store
}

func NewHandler(st *store.Store) *Handler { return &Handler{st: st} }

/* ================================ DTOs ================================= */

type CreateUserRequest struct {
	Role       string `json:"role" validate:"required,oneof=admin agent client"`
	Name       string `json:"name" validate:"required,min=2,max=80"`
	Email      string `json:"email" validate:"required,email,max=120"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Phone      string `json:"phone" validate:"omitempty,phone"`
	ClientType string `json:"client_type" validate:"omitempty,oneof=patient student visitor"`
	Country    string `json:"country" validate:"omitempty,country"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=80"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Country  *string `json:"country" validate:"omitempty,country"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

/* ============================== Handlers ================================ */

// @Summary      Add user
// @Description  Admin creates an account of any role
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateUserRequest  true  "User payload"
// @Success      201  {object}  models.User
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /users [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	if models.Role(in.Role) == models.RoleClient && in.ClientType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "client_type is required for clients")
	}

	if _, err := h.st.UserByEmail(in.Email); err == nil {
		return fiber.NewError(fiber.StatusConflict, "email already exists")
	}

	u := h.st.AddUser(store.UserInput{
		Role:       models.Role(in.Role),
		Name:       in.Name,
		Email:      in.Email,
		Password:   in.Password,
		Phone:      in.Phone,
		ClientType: models.ClientType(in.ClientType),
		Country:    strings.ToUpper(strings.TrimSpace(in.Country)),
	})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// @Summary      List users
// @Description  Admin lists accounts, optionally filtered by role
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        role  query string false "admin | agent | client"
// @Success      200  {array}  models.User
// @Router       /users [get]
func (h *Handler) List(c *fiber.Ctx) error {
	role := strings.TrimSpace(c.Query("role"))
	switch role {
	case "", string(models.RoleAdmin), string(models.RoleAgent), string(models.RoleClient):
	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid role filter")
	}
	return c.JSON(h.st.Users(models.Role(role)))
}

// @Summary      Update user
// @Description  Admin updates profile fields, credentials, or account status
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "user id"
// @Param        payload  body  UpdateUserRequest  true  "Fields to change"
// @Success      200  {object}  models.User
// @Failure      404  {object}  models.ErrorResponse
// @Router       /users/{id} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	var in UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	patch := store.UserPatch{
		Name:     in.Name,
		Phone:    in.Phone,
		Country:  in.Country,
		Password: in.Password,
	}
	if in.Status != nil {
		st := models.UserStatus(*in.Status)
		patch.Status = &st
	}

	u, err := h.st.UpdateUser(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(u)
}

// @Summary      Delete user
// @Description  Admin removes an account; records referencing it are left in place
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      204  "no content"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /users/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.st.DeleteUser(c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}
