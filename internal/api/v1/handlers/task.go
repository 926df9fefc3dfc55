package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/api/middleware"
	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	*APIHandler
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(api *APIHandler) *TaskHandler {
	return &TaskHandler{APIHandler: api}
}

// TaskCreateParams defines the body for creating a task
type TaskCreateParams struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *uint      `json:"assignee_id"`
	Position    int        `json:"position"`
}

// Validate validates the parameters for creating a task
func (p TaskCreateParams) Validate() error {
	if p.Title == "" {
		return errors.New(ErrMsgTaskTitleRequired)
	}
	if p.Status != "" {
		if _, err := models.ParseTaskStatus(p.Status); err != nil {
			return err
		}
	}
	if p.Priority != "" {
		if _, err := models.ParseTaskPriority(p.Priority); err != nil {
			return err
		}
	}
	return nil
}

// CreateTask handles creating a task under a project
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	var params TaskCreateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	task := models.Task{
		ProjectID:   projectID,
		CreatorID:   middleware.UserID(c),
		AssigneeID:  params.AssigneeID,
		Title:       params.Title,
		Description: params.Description,
		Status:      models.TaskStatus(params.Status),
		Priority:    models.TaskPriority(params.Priority),
		DueDate:     params.DueDate,
		Position:    params.Position,
	}
	if err := h.task.Create(c.Context(), &task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgProjNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgTaskCreateFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTask handles retrieving a task by ID
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	task, err := h.task.Get(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgTaskNotFound))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgTaskListFailed))
	}
	return c.JSON(task)
}

// ListTasks handles listing all tasks for a project
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	opts := getPaginationOptions(c.QueryInt("page", 1))
	tasks, err := h.task.ListByProject(c.Context(), projectID, opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgTaskListFailed))
	}
	return c.JSON(tasks)
}

// TaskUpdateParams defines the body for updating a task
type TaskUpdateParams struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *uint      `json:"assignee_id"`
	Progress    *int       `json:"progress"`
}

// Validate validates the parameters for updating a task
func (p TaskUpdateParams) Validate() error {
	if p.Status != "" {
		if _, err := models.ParseTaskStatus(p.Status); err != nil {
			return err
		}
	}
	if p.Priority != "" {
		if _, err := models.ParseTaskPriority(p.Priority); err != nil {
			return err
		}
	}
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return errors.New("progress must be between 0 and 100")
	}
	return nil
}

// UpdateTask handles updating a task
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	var params TaskUpdateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	task := models.Task{
		Model:       gorm.Model{ID: id},
		Title:       params.Title,
		Description: params.Description,
		Status:      models.TaskStatus(params.Status),
		Priority:    models.TaskPriority(params.Priority),
		DueDate:     params.DueDate,
		AssigneeID:  params.AssigneeID,
	}
	if params.Progress != nil {
		task.Progress = *params.Progress
	}

	if err := h.task.Update(c.Context(), &task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgTaskNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgTaskUpdateFailed))
	}

	updated, err := h.task.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgTaskUpdateFailed))
	}
	return c.JSON(updated)
}

// TaskMoveParams defines the body for moving a task on the kanban board
type TaskMoveParams struct {
	Status   string `json:"status"`
	Position int    `json:"position"`
}

// Validate validates the parameters for moving a task
func (p TaskMoveParams) Validate() error {
	if _, err := models.ParseTaskStatus(p.Status); err != nil {
		return errors.New(ErrMsgTaskStatusInvalid)
	}
	if p.Position < 0 {
		return errors.New("position must be non-negative")
	}
	return nil
}

// MoveTask handles moving a task to a new status and position
func (h *TaskHandler) MoveTask(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	var params TaskMoveParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	if err := h.task.Move(c.Context(), id, models.TaskStatus(params.Status), params.Position); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgTaskMoveFailed))
	}
	return c.JSON(Response{Slug: SuccessSlug})
}

// DeleteTask handles hard-deleting a task
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	if err := h.task.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgTaskDeleteFailed))
	}
	return c.JSON(Response{Slug: SuccessSlug})
}
