package api_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-dev/studyhub/internal/api/v1/handlers"
	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/pkg/api/v1/client"
	"github.com/studyhub-dev/studyhub/test"
)

// newUnauthenticatedClient builds a client against the suite's server
// without a bearer token
func newUnauthenticatedClient(suite *test.Suite) (client.Client, error) {
	return client.NewClient(&client.Options{
		BaseURL: suite.Server.URL,
		Timeout: 5 * time.Second,
	})
}

// This file exercises the API end to end: real server, real client,
// file-based database, scripted AI providers.

func TestClientProjectAndTaskFlow(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()

	due := time.Now().AddDate(0, 0, 7)
	project, err := suite.APIClient.CreateProject(suite.Context(), handlers.ProjectCreateParams{
		Name:       "Thesis",
		CourseName: "Databases",
		DueDate:    &due,
	})
	require.NoError(t, err)
	require.NotZero(t, project.ID)
	assert.Equal(t, "Thesis", project.Name)

	fetched, err := suite.APIClient.GetProject(suite.Context(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, fetched.ID)

	projects, err := suite.APIClient.ListProjects(suite.Context(), 1)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	task, err := suite.APIClient.CreateTask(suite.Context(), project.ID, handlers.TaskCreateParams{
		Title: "Write introduction",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusTodo, task.Status)

	require.NoError(t, suite.APIClient.MoveTask(suite.Context(), task.ID, handlers.TaskMoveParams{
		Status:   "in_progress",
		Position: 0,
	}))

	tasks, err := suite.APIClient.ListTasks(suite.Context(), project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusInProgress, tasks[0].Status)

	require.NoError(t, suite.APIClient.DeleteProject(suite.Context(), project.ID))
	_, err = suite.APIClient.GetProject(suite.Context(), project.ID)
	require.Error(t, err)
}

func TestClientInsightsWithoutProvider(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()

	project, err := suite.APIClient.CreateProject(suite.Context(), handlers.ProjectCreateParams{Name: "Thesis"})
	require.NoError(t, err)

	_, err = suite.APIClient.CreateTask(suite.Context(), project.ID, handlers.TaskCreateParams{
		Title: "Done already", Status: "done",
	})
	require.NoError(t, err)
	_, err = suite.APIClient.CreateTask(suite.Context(), project.ID, handlers.TaskCreateParams{
		Title: "Still open",
	})
	require.NoError(t, err)

	// Half the tasks done, none overdue: the fallback formula yields 50
	health, err := suite.APIClient.ProjectHealth(suite.Context(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, health.Score)
	assert.Equal(t, services.HealthAtRisk, health.Status)

	globalHealth, err := suite.APIClient.GlobalHealth(suite.Context())
	require.NoError(t, err)
	assert.Equal(t, 50, globalHealth.Score)

	suggestions, err := suite.APIClient.ProjectSuggestions(suite.Context(), project.ID)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	report, err := suite.APIClient.ProjectReport(suite.Context(), project.ID)
	require.NoError(t, err)
	require.NotNil(t, report.Metrics)
	require.NotNil(t, report.Health)
	assert.Equal(t, "Completed 1 of 2 tasks; health is at_risk (50/100).", report.Summary)

	result, err := suite.APIClient.AnalyzeDocument(suite.Context(), "Lecture notes about B-trees")
	require.NoError(t, err)
	assert.Nil(t, result.Analysis)
	assert.Equal(t, "AI features not available", result.Error)
}

func TestClientHealthWithProviderIsCached(t *testing.T) {
	provider := test.NewStubProvider(`{"score": 91, "status": "excellent", "insights": ["On track"]}`)
	suite := test.NewSuite(t, provider)
	defer suite.Cleanup()

	project, err := suite.APIClient.CreateProject(suite.Context(), handlers.ProjectCreateParams{Name: "Thesis"})
	require.NoError(t, err)
	_, err = suite.APIClient.CreateTask(suite.Context(), project.ID, handlers.TaskCreateParams{Title: "Write introduction"})
	require.NoError(t, err)

	health, err := suite.APIClient.ProjectHealth(suite.Context(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 91, health.Score)
	assert.Equal(t, services.HealthExcellent, health.Status)
	assert.Equal(t, 1, provider.Calls())

	// Second request is served from the cache; the exhausted stub would
	// otherwise fail the request into the fallback formula
	again, err := suite.APIClient.ProjectHealth(suite.Context(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 91, again.Score)
	assert.Equal(t, 1, provider.Calls())
}

func TestClientSuggestionsWithProvider(t *testing.T) {
	provider := test.NewStubProvider(`[{"title": "Review chapter 3", "description": "Covers indexing", "priority": "high", "reasoning": "Exam relevant"}]`)
	suite := test.NewSuite(t, provider)
	defer suite.Cleanup()

	project, err := suite.APIClient.CreateProject(suite.Context(), handlers.ProjectCreateParams{Name: "Thesis"})
	require.NoError(t, err)
	_, err = suite.APIClient.CreateTask(suite.Context(), project.ID, handlers.TaskCreateParams{Title: "Read chapter 3"})
	require.NoError(t, err)

	suggestions, err := suite.APIClient.ProjectSuggestions(suite.Context(), project.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Review chapter 3", suggestions[0].Title)
	assert.Equal(t, "high", suggestions[0].Priority)

	// Each suggestion leaves an audit row
	var records []models.SuggestionRecord
	require.NoError(t, suite.DB.Find(&records).Error)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].ProjectID)
	assert.Equal(t, project.ID, *records[0].ProjectID)
}

func TestClientAnalyzeDocumentWithProvider(t *testing.T) {
	provider := test.NewStubProvider(`{"summary": "Notes on B-trees", "topics": ["indexing"], "suggestedTasks": [], "deadlines": [], "keyConcepts": ["B-tree"]}`)
	suite := test.NewSuite(t, provider)
	defer suite.Cleanup()

	result, err := suite.APIClient.AnalyzeDocument(suite.Context(), "Lecture notes about B-trees")
	require.NoError(t, err)
	require.NotNil(t, result.Analysis)
	assert.Empty(t, result.Error)
	assert.Equal(t, "Notes on B-trees", result.Analysis.Summary)
	assert.Equal(t, []string{"indexing"}, result.Analysis.Topics)
}

func TestClientDeadlines(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()

	projectDue := time.Now().AddDate(0, 0, 5)
	project, err := suite.APIClient.CreateProject(suite.Context(), handlers.ProjectCreateParams{
		Name:    "Thesis",
		DueDate: &projectDue,
	})
	require.NoError(t, err)

	taskDue := time.Now().AddDate(0, 0, 2)
	_, err = suite.APIClient.CreateTask(suite.Context(), project.ID, handlers.TaskCreateParams{
		Title:   "Submit draft",
		DueDate: &taskDue,
	})
	require.NoError(t, err)

	deadlines, err := suite.APIClient.ListDeadlines(suite.Context(), 30)
	require.NoError(t, err)
	require.Len(t, deadlines, 2)
	assert.Equal(t, services.DeadlineTask, deadlines[0].Kind)
	assert.Equal(t, "Submit draft", deadlines[0].Title)
	assert.Equal(t, services.DeadlineProject, deadlines[1].Kind)
}

func TestListEndpointsReturnBareArrays(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()

	project, err := suite.APIClient.CreateProject(suite.Context(), handlers.ProjectCreateParams{Name: "Thesis"})
	require.NoError(t, err)
	_, err = suite.APIClient.CreateTask(suite.Context(), project.ID, handlers.TaskCreateParams{Title: "Write introduction"})
	require.NoError(t, err)

	// Every list endpoint serves a bare JSON array; the client decodes
	// them as plain slices
	token := test.SignTestToken(suite, test.TestUserID)
	for _, endpoint := range []string{
		"/api/v1/projects",
		fmt.Sprintf("/api/v1/projects/%d/tasks", project.ID),
	} {
		req, err := http.NewRequest(http.MethodGet, suite.Server.URL+endpoint, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, resp.Body.Close())
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "endpoint %s", endpoint)

		var rows []json.RawMessage
		require.NoError(t, json.Unmarshal(body, &rows), "endpoint %s must serve a JSON array", endpoint)
		assert.Len(t, rows, 1, "endpoint %s", endpoint)
	}
}

func TestClientRejectsUnauthenticatedRequests(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()

	unauthenticated, err := newUnauthenticatedClient(suite)
	require.NoError(t, err)

	_, err = unauthenticated.ListProjects(suite.Context(), 1)
	require.Error(t, err)
}
