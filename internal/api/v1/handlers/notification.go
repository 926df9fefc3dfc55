package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studyhub-dev/studyhub/internal/api/middleware"
)

// NotificationHandler handles HTTP requests for notification operations
type NotificationHandler struct {
	*APIHandler
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(api *APIHandler) *NotificationHandler {
	return &NotificationHandler{APIHandler: api}
}

// ListNotifications handles listing the authenticated user's notifications
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread", false)
	page := c.QueryInt("page", 1)

	notifications, err := h.notification.ListByUser(c.Context(), middleware.UserID(c), unreadOnly, getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgNotifListFailed))
	}
	return c.JSON(notifications)
}

// MarkNotificationRead handles marking a single notification as read
func (h *NotificationHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	if err := h.notification.MarkRead(c.Context(), middleware.UserID(c), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgNotifMarkFailed))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllNotificationsRead handles marking all of a user's notifications as read
func (h *NotificationHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := h.notification.MarkAllRead(c.Context(), middleware.UserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgNotifMarkFailed))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
