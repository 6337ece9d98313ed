package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopline/catalog-service/internal/api/dto"
	"github.com/shopline/catalog-service/internal/service"
	"github.com/shopline/catalog-service/internal/validation"
)

// UsersHandler exposes the /users endpoints. Responses always go through
// dto.UserView.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserViews(users))
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserView(user))
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	input, err := validation.User(validation.Create, c.Body())
	if err != nil {
		return validationFailed(err)
	}
	user, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserView(user))
}

// Update PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	patch, err := validation.User(validation.Update, c.Body())
	if err != nil {
		return validationFailed(err)
	}
	user, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserView(user))
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
