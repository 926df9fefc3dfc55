// Package client provides the API client for interacting with the StudyHub API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/studyhub-dev/studyhub/internal/api/v1/handlers"
	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/services"
)

// DefaultBaseURL is the default address of the API server
const DefaultBaseURL = "http://localhost:8080"

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Project methods
	CreateProject(ctx context.Context, params handlers.ProjectCreateParams) (models.Project, error)
	GetProject(ctx context.Context, id uint) (models.Project, error)
	ListProjects(ctx context.Context, page int) ([]models.Project, error)
	DeleteProject(ctx context.Context, id uint) error

	// Task methods
	CreateTask(ctx context.Context, projectID uint, params handlers.TaskCreateParams) (models.Task, error)
	ListTasks(ctx context.Context, projectID uint) ([]models.Task, error)
	MoveTask(ctx context.Context, id uint, params handlers.TaskMoveParams) error

	// Insight methods
	ProjectHealth(ctx context.Context, projectID uint) (services.HealthScore, error)
	GlobalHealth(ctx context.Context) (services.HealthScore, error)
	ProjectSuggestions(ctx context.Context, projectID uint) ([]services.TaskSuggestion, error)
	GlobalSuggestions(ctx context.Context) ([]services.TaskSuggestion, error)
	ProjectReport(ctx context.Context, projectID uint) (services.Report, error)
	GlobalReport(ctx context.Context) (services.Report, error)
	AnalyzeDocument(ctx context.Context, text string) (services.DocumentAnalysisResult, error)

	// Calendar methods
	ListDeadlines(ctx context.Context, days int) ([]services.Deadline, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// AuthToken is the bearer token sent with every request
	AuthToken string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL   string
	timeout   time.Duration
	AuthToken string
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	_, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL:   opts.BaseURL,
		timeout:   opts.Timeout,
		AuthToken: opts.AuthToken,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	if c.AuthToken != "" {
		agent.Set("Authorization", "Bearer "+c.AuthToken)
	}

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		// If we can't decode the error response, return an error with the raw body as the message
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// HealthCheck checks the health of the API server
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var response map[string]string
	err := c.executeRequest(ctx, http.MethodGet, "/health", nil, &response)
	return response, err
}

// CreateProject creates a new project
func (c *APIClient) CreateProject(ctx context.Context, params handlers.ProjectCreateParams) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/projects", params, &project)
	return project, err
}

// GetProject retrieves a project by ID
func (c *APIClient) GetProject(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", id), nil, &project)
	return project, err
}

// ListProjects lists the user's projects
func (c *APIClient) ListProjects(ctx context.Context, page int) ([]models.Project, error) {
	var projects []models.Project
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects?page=%d", page), nil, &projects)
	return projects, err
}

// DeleteProject deletes a project by ID
func (c *APIClient) DeleteProject(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", id), nil, nil)
}

// CreateTask creates a new task within a project
func (c *APIClient) CreateTask(ctx context.Context, projectID uint, params handlers.TaskCreateParams) (models.Task, error) {
	var task models.Task
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/tasks", projectID), params, &task)
	return task, err
}

// ListTasks lists the tasks of a project
func (c *APIClient) ListTasks(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/tasks", projectID), nil, &tasks)
	return tasks, err
}

// MoveTask moves a task to a new status and position
func (c *APIClient) MoveTask(ctx context.Context, id uint, params handlers.TaskMoveParams) error {
	return c.executeRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d/move", id), params, nil)
}

// ProjectHealth retrieves the health score for a project
func (c *APIClient) ProjectHealth(ctx context.Context, projectID uint) (services.HealthScore, error) {
	var health services.HealthScore
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/ai/health", projectID), nil, &health)
	return health, err
}

// GlobalHealth retrieves the health score across all projects
func (c *APIClient) GlobalHealth(ctx context.Context) (services.HealthScore, error) {
	var health services.HealthScore
	err := c.executeRequest(ctx, http.MethodGet, "/api/v1/ai/global-health", nil, &health)
	return health, err
}

// ProjectSuggestions retrieves task suggestions for a project
func (c *APIClient) ProjectSuggestions(ctx context.Context, projectID uint) ([]services.TaskSuggestion, error) {
	var suggestions []services.TaskSuggestion
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/ai/suggestions", projectID), nil, &suggestions)
	return suggestions, err
}

// GlobalSuggestions retrieves task suggestions across all projects
func (c *APIClient) GlobalSuggestions(ctx context.Context) ([]services.TaskSuggestion, error) {
	var suggestions []services.TaskSuggestion
	err := c.executeRequest(ctx, http.MethodGet, "/api/v1/ai/global-suggestions", nil, &suggestions)
	return suggestions, err
}

// ProjectReport retrieves a progress report for a project
func (c *APIClient) ProjectReport(ctx context.Context, projectID uint) (services.Report, error) {
	var report services.Report
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/ai/report", projectID), nil, &report)
	return report, err
}

// GlobalReport retrieves a progress report across all projects
func (c *APIClient) GlobalReport(ctx context.Context) (services.Report, error) {
	var report services.Report
	err := c.executeRequest(ctx, http.MethodGet, "/api/v1/ai/global-report", nil, &report)
	return report, err
}

// AnalyzeDocument extracts structured study data from document text
func (c *APIClient) AnalyzeDocument(ctx context.Context, text string) (services.DocumentAnalysisResult, error) {
	var result services.DocumentAnalysisResult
	params := handlers.DocumentAnalyzeParams{Text: text}
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/ai/analyze-document", params, &result)
	return result, err
}

// ListDeadlines lists upcoming project and task deadlines
func (c *APIClient) ListDeadlines(ctx context.Context, days int) ([]services.Deadline, error) {
	var deadlines []services.Deadline
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/calendar/deadlines?days=%d", days), nil, &deadlines)
	return deadlines, err
}
