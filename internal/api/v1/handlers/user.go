package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	*APIHandler
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(api *APIHandler) *UserHandler {
	return &UserHandler{APIHandler: api}
}

// UserCreateParams defines the body for creating a user
type UserCreateParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Validate validates the parameters for creating a user
func (p UserCreateParams) Validate() error {
	if p.Username == "" {
		return errors.New(ErrMsgUsernameRequired)
	}
	if p.Role != "" {
		if _, err := models.ParseUserRole(p.Role); err != nil {
			return err
		}
	}
	return nil
}

// CreateUser handles creating a user
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var params UserCreateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	role := models.UserRoleStudent
	if params.Role != "" {
		role, _ = models.ParseUserRole(params.Role)
	}

	user := models.User{
		Username: params.Username,
		Email:    params.Email,
		FullName: params.FullName,
		Role:     role,
	}
	if _, err := h.user.CreateUser(c.Context(), &user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgCreateUserFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles retrieving a user by ID
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	user, err := h.user.GetUserByID(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgUserNotFound))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgGetUserFailed))
	}
	return c.JSON(user)
}

// ListUsers handles listing users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	users, err := h.user.GetUsers(c.Context(), getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgGetUserFailed))
	}
	return c.JSON(users)
}
