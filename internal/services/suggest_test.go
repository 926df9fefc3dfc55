package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

func TestSuggestions_NoProviderReturnsEmptyList(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: false}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Some task", models.TaskStatusTodo, nil, time.Time{})

	suggestions, err := svc.Suggestions(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)

	assert.NotNil(t, suggestions, "must be an empty list, not nil")
	assert.Empty(t, suggestions)
	assert.Zero(t, gateway.calls)
}

func TestSuggestions_ProviderFailureReturnsEmptyList(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, err: errors.New("provider down")}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)

	suggestions, err := svc.Suggestions(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestSuggestions_NonArrayResponseReturnsEmptyList(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `{"title": "not an array"}`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)

	suggestions, err := svc.Suggestions(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)

	var count int64
	require.NoError(t, db.Model(&models.SuggestionRecord{}).Count(&count).Error)
	assert.Zero(t, count, "unparseable responses are not recorded")
}

func TestSuggestions_ParsesAndRecords(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `[
		{"title": "Review notes", "description": "Go over lecture notes", "priority": "high", "reasoning": "Exam soon"},
		{"title": "Draft outline", "description": "Outline the essay", "priority": "medium", "reasoning": "Due next week"}
	]`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Existing task", models.TaskStatusTodo, nil, time.Time{})

	suggestions, err := svc.Suggestions(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "Review notes", suggestions[0].Title)
	assert.Equal(t, "high", suggestions[0].Priority)
	assert.True(t, gateway.lastOpts.JSONMode)
	assert.Contains(t, gateway.lastPrompt, "Existing task")

	// One audit row per suggestion, carrying the project scope and that
	// suggestion alone
	var records []models.SuggestionRecord
	require.NoError(t, db.Order("id asc").Find(&records).Error)
	require.Len(t, records, 2)
	for i, r := range records {
		require.NotNil(t, r.ProjectID)
		assert.Equal(t, project.ID, *r.ProjectID)
		assert.Equal(t, uint(1), r.UserID)
		assert.Equal(t, models.AnalysisSuggestions, r.Type)

		var recorded TaskSuggestion
		require.NoError(t, json.Unmarshal([]byte(r.Response), &recorded))
		assert.Equal(t, suggestions[i], recorded)
	}
	assert.NotEqual(t, records[0].Response, records[1].Response)
}

func TestSuggestions_GlobalRecordsHaveNoProject(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `[{"title": "Plan the week", "description": "", "priority": "low", "reasoning": ""}]`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Some task", models.TaskStatusTodo, nil, time.Time{})

	suggestions, err := svc.Suggestions(context.Background(), GlobalScope(1))
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	var records []models.SuggestionRecord
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].ProjectID)
}

func TestSuggestionContext_ProjectCap(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	for i := 0; i < maxSuggestionContextTasks+5; i++ {
		seedTask(t, db, project.ID, fmt.Sprintf("Task %d", i), models.TaskStatusTodo, nil, time.Time{})
	}

	taskCtx, err := svc.suggestionContext(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.Len(t, taskCtx, maxSuggestionContextTasks)
}

func TestSuggestionContext_GlobalPerProjectCap(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	a := seedProject(t, db, 1, "Project A", nil)
	b := seedProject(t, db, 1, "Project B", nil)
	for i := 0; i < tasksPerProjectGlobal+3; i++ {
		seedTask(t, db, a.ID, fmt.Sprintf("A task %d", i), models.TaskStatusTodo, nil, time.Time{})
		seedTask(t, db, b.ID, fmt.Sprintf("B task %d", i), models.TaskStatusTodo, nil, time.Time{})
	}

	taskCtx, err := svc.suggestionContext(context.Background(), GlobalScope(1))
	require.NoError(t, err)
	assert.Len(t, taskCtx, 2*tasksPerProjectGlobal)
}

func TestSuggestionContext_IncludesDueDates(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	seedTask(t, db, project.ID, "With due date", models.TaskStatusTodo, &due, time.Time{})
	seedTask(t, db, project.ID, "Without due date", models.TaskStatusTodo, nil, time.Time{})

	taskCtx, err := svc.suggestionContext(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	require.Len(t, taskCtx, 2)

	byTitle := map[string]suggestionTaskContext{}
	for _, c := range taskCtx {
		byTitle[c.Title] = c
	}
	assert.Equal(t, "2025-04-01", byTitle["With due date"].DueDate)
	assert.Empty(t, byTitle["Without due date"].DueDate)
}
