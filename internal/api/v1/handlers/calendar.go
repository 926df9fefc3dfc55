package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studyhub-dev/studyhub/internal/api/middleware"
)

// defaultDeadlineWindowDays bounds how far ahead the calendar looks by default.
const defaultDeadlineWindowDays = 30

// CalendarHandler handles HTTP requests for calendar operations
type CalendarHandler struct {
	*APIHandler
}

// NewCalendarHandler creates a new CalendarHandler instance
func NewCalendarHandler(api *APIHandler) *CalendarHandler {
	return &CalendarHandler{APIHandler: api}
}

// ListDeadlines handles listing upcoming project and task deadlines
func (h *CalendarHandler) ListDeadlines(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultDeadlineWindowDays)
	if days < 1 {
		days = defaultDeadlineWindowDays
	}

	deadlines, err := h.calendar.UpcomingDeadlines(c.Context(), middleware.UserID(c), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgCalendarFailed))
	}
	return c.JSON(deadlines)
}
