package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/api/middleware"
	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	*APIHandler
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(api *APIHandler) *ProjectHandler {
	return &ProjectHandler{APIHandler: api}
}

// ProjectCreateParams defines the body for creating a project
type ProjectCreateParams struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CourseName  string     `json:"course_name"`
	CourseCode  string     `json:"course_code"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
}

// Validate validates the parameters for creating a project
func (p ProjectCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New(ErrMsgProjNameRequired)
	}
	return nil
}

// CreateProject handles creating a project
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var params ProjectCreateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	project := models.Project{
		OwnerID:     middleware.UserID(c),
		Name:        params.Name,
		Description: params.Description,
		CourseName:  params.CourseName,
		CourseCode:  params.CourseCode,
		StartDate:   params.StartDate,
		DueDate:     params.DueDate,
	}
	if err := h.project.Create(c.Context(), &project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgProjCreateFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject handles retrieving a project by ID
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	project, err := h.project.Get(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgProjNotFound))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgProjListFailed))
	}
	return c.JSON(project)
}

// ListProjects handles listing the caller's projects with pagination
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	opts := getPaginationOptions(c.QueryInt("page", 1))
	opts.IncludeDeleted = c.QueryBool("include_deleted", false)

	projects, err := h.project.List(c.Context(), middleware.UserID(c), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgProjListFailed))
	}
	return c.JSON(projects)
}

// ProjectUpdateParams defines the body for updating a project
type ProjectUpdateParams struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CourseName  string     `json:"course_name"`
	CourseCode  string     `json:"course_code"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	Progress    *int       `json:"progress"`
}

// Validate validates the parameters for updating a project
func (p ProjectUpdateParams) Validate() error {
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return errors.New("progress must be between 0 and 100")
	}
	return nil
}

// UpdateProject handles updating a project
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	var params ProjectUpdateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	project := models.Project{
		Model:       gorm.Model{ID: id},
		Name:        params.Name,
		Description: params.Description,
		CourseName:  params.CourseName,
		CourseCode:  params.CourseCode,
		StartDate:   params.StartDate,
		DueDate:     params.DueDate,
	}
	if params.Progress != nil {
		project.Progress = *params.Progress
	}

	if err := h.project.Update(c.Context(), middleware.UserID(c), &project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgProjUpdateFailed))
	}

	updated, err := h.project.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgProjUpdateFailed))
	}
	return c.JSON(updated)
}

// DeleteProject handles soft-deleting a project
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	if err := h.project.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgProjDeleteFailed))
	}
	return c.JSON(Response{Slug: SuccessSlug})
}
