package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/api/middleware"
	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// ChannelHandler handles HTTP requests for channel and message operations
type ChannelHandler struct {
	*APIHandler
}

// NewChannelHandler creates a new ChannelHandler instance
func NewChannelHandler(api *APIHandler) *ChannelHandler {
	return &ChannelHandler{APIHandler: api}
}

// ChannelCreateParams defines the body for creating a channel
type ChannelCreateParams struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

// Validate validates the parameters for creating a channel
func (p ChannelCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New(ErrMsgChannelNameRequired)
	}
	return nil
}

// MessagePostParams defines the body for posting a message
type MessagePostParams struct {
	Body string `json:"body"`
}

// Validate validates the parameters for posting a message
func (p MessagePostParams) Validate() error {
	if p.Body == "" {
		return errors.New(ErrMsgMessageBodyRequired)
	}
	return nil
}

// CreateChannel handles creating a channel within a project
func (h *ChannelHandler) CreateChannel(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	var params ChannelCreateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	if _, err := h.project.GetOwned(c.Context(), middleware.UserID(c), projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgProjNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgChannelCreateFailed))
	}

	channel := models.Channel{
		ProjectID: projectID,
		Name:      params.Name,
		Topic:     params.Topic,
	}
	if err := h.channel.Create(c.Context(), &channel); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgChannelCreateFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(channel)
}

// ListChannels handles listing the channels of a project
func (h *ChannelHandler) ListChannels(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	channels, err := h.channel.ListByProject(c.Context(), projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgChannelListFailed))
	}
	return c.JSON(channels)
}

// PostMessage handles posting a message to a channel
func (h *ChannelHandler) PostMessage(c *fiber.Ctx) error {
	channelID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	var params MessagePostParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	if _, err := h.channel.Get(c.Context(), channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgChannelNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgMessagePostFailed))
	}

	message := models.Message{
		ChannelID: channelID,
		AuthorID:  middleware.UserID(c),
		Body:      params.Body,
	}
	if err := h.channel.PostMessage(c.Context(), &message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgMessagePostFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// ListMessages handles listing the messages of a channel
func (h *ChannelHandler) ListMessages(c *fiber.Ctx) error {
	channelID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	page := c.QueryInt("page", 1)
	messages, err := h.channel.ListMessages(c.Context(), channelID, getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgMessageListFailed))
	}
	return c.JSON(messages)
}
