package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/api/middleware"
	"github.com/studyhub-dev/studyhub/internal/services"
)

// AIHandler handles HTTP requests for AI-assisted insight operations
type AIHandler struct {
	*APIHandler
}

// NewAIHandler creates a new AIHandler instance
func NewAIHandler(api *APIHandler) *AIHandler {
	return &AIHandler{APIHandler: api}
}

// DocumentAnalyzeParams defines the body for analyzing a document
type DocumentAnalyzeParams struct {
	Text string `json:"text"`
}

// Validate validates the parameters for analyzing a document
func (p DocumentAnalyzeParams) Validate() error {
	if p.Text == "" {
		return errors.New(ErrMsgDocumentRequired)
	}
	return nil
}

// projectScope resolves the :id route parameter into a project-scoped request,
// verifying that the project belongs to the authenticated user.
func (h *AIHandler) projectScope(c *fiber.Ctx) (services.Scope, error) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return services.Scope{}, c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	userID := middleware.UserID(c)
	if _, err := h.project.GetOwned(c.Context(), userID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.Scope{}, c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgProjNotFound))
		}
		return services.Scope{}, c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgHealthFailed))
	}
	return services.ProjectScope(userID, projectID), nil
}

// ProjectHealth handles computing the health score for a single project
func (h *AIHandler) ProjectHealth(c *fiber.Ctx) error {
	scope, err := h.projectScope(c)
	if err != nil {
		return err
	}

	health, err := h.insight.HealthScore(c.Context(), scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgHealthFailed))
	}
	return c.JSON(health)
}

// GlobalHealth handles computing the health score across all of a user's projects
func (h *AIHandler) GlobalHealth(c *fiber.Ctx) error {
	health, err := h.insight.HealthScore(c.Context(), services.GlobalScope(middleware.UserID(c)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgHealthFailed))
	}
	return c.JSON(health)
}

// ProjectSuggestions handles generating task suggestions for a single project
func (h *AIHandler) ProjectSuggestions(c *fiber.Ctx) error {
	scope, err := h.projectScope(c)
	if err != nil {
		return err
	}

	suggestions, err := h.insight.Suggestions(c.Context(), scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgSuggestionsFailed))
	}
	return c.JSON(suggestions)
}

// GlobalSuggestions handles generating task suggestions across all of a user's projects
func (h *AIHandler) GlobalSuggestions(c *fiber.Ctx) error {
	suggestions, err := h.insight.Suggestions(c.Context(), services.GlobalScope(middleware.UserID(c)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgSuggestionsFailed))
	}
	return c.JSON(suggestions)
}

// ProjectReport handles generating a progress report for a single project
func (h *AIHandler) ProjectReport(c *fiber.Ctx) error {
	scope, err := h.projectScope(c)
	if err != nil {
		return err
	}

	report, err := h.insight.Report(c.Context(), scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgReportFailed))
	}
	return c.JSON(report)
}

// GlobalReport handles generating a progress report across all of a user's projects
func (h *AIHandler) GlobalReport(c *fiber.Ctx) error {
	report, err := h.insight.Report(c.Context(), services.GlobalScope(middleware.UserID(c)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgReportFailed))
	}
	return c.JSON(report)
}

// AnalyzeDocument handles extracting structured study data from document text.
// The document may arrive either as a JSON body or as a multipart file upload.
func (h *AIHandler) AnalyzeDocument(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgDocumentRequired))
		}
		defer f.Close()

		buf, err := io.ReadAll(f)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgDocumentRequired))
		}

		result, err := h.insight.AnalyzeDocumentBuffer(c.Context(), userID, buf, file.Header.Get("Content-Type"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
		}
		return c.JSON(result)
	}

	var params DocumentAnalyzeParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	result, err := h.insight.AnalyzeDocument(c.Context(), userID, params.Text)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}
	return c.JSON(result)
}
