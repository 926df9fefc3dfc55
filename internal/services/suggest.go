package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

// Suggestion context limits
const (
	// maxSuggestionContextTasks caps how many tasks are embedded in the
	// suggestion prompt
	maxSuggestionContextTasks = 20
	// tasksPerProjectGlobal caps tasks taken from each project in global scope
	tasksPerProjectGlobal = 5
	// suggestionCount is how many suggestions the prompt asks for
	suggestionCount = 3
)

// TaskSuggestion is a single AI-suggested task
type TaskSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Reasoning   string `json:"reasoning"`
}

// suggestionTaskContext is the per-task slice of context sent to the provider
type suggestionTaskContext struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate,omitempty"`
}

// Suggestions produces up to three suggested tasks for a scope. Without a
// configured provider the result is an empty list; parse failures also yield
// an empty list. This operation never returns an AI error to the caller.
func (s *Insight) Suggestions(ctx context.Context, scope Scope) ([]TaskSuggestion, error) {
	if !s.gateway.Available() {
		return []TaskSuggestion{}, nil
	}

	taskCtx, err := s.suggestionContext(ctx, scope)
	if err != nil {
		return nil, err
	}

	contextJSON, err := json.Marshal(taskCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestion context: %w", err)
	}

	prompt := buildSuggestionPrompt(contextJSON, scope.IsGlobal())
	raw, err := s.gateway.Complete(ctx, prompt, ai.CompletionOptions{
		Temperature: 0.7,
		MaxTokens:   1024,
		JSONMode:    true,
	})
	if err != nil {
		logger.WarnWithFields("AI suggestions failed, returning empty list", map[string]interface{}{
			"project_id": scope.ProjectID,
			"error":      err.Error(),
		})
		return []TaskSuggestion{}, nil
	}

	var suggestions []TaskSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		logger.WarnWithFields("AI suggestions response is not a JSON array", map[string]interface{}{
			"project_id": scope.ProjectID,
			"error":      err.Error(),
		})
		return []TaskSuggestion{}, nil
	}

	s.recordSuggestions(ctx, scope, prompt, contextJSON, suggestions)
	return suggestions, nil
}

// suggestionContext gathers the most recently updated tasks for the prompt:
// up to 20 for a single project, or 5 per project concatenated when global
func (s *Insight) suggestionContext(ctx context.Context, scope Scope) ([]suggestionTaskContext, error) {
	var tasks []models.Task
	if scope.IsGlobal() {
		projects, err := s.projects.List(ctx, scope.UserID, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects for user %d: %w", scope.UserID, err)
		}
		for _, p := range projects {
			recent, err := s.tasks.ListRecentByProject(ctx, p.ID, tasksPerProjectGlobal)
			if err != nil {
				return nil, fmt.Errorf("failed to load tasks for project %d: %w", p.ID, err)
			}
			tasks = append(tasks, recent...)
			if len(tasks) >= maxSuggestionContextTasks {
				tasks = tasks[:maxSuggestionContextTasks]
				break
			}
		}
	} else {
		recent, err := s.tasks.ListRecentByProject(ctx, scope.ProjectID, maxSuggestionContextTasks)
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks for project %d: %w", scope.ProjectID, err)
		}
		tasks = recent
	}

	taskCtx := make([]suggestionTaskContext, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		c := suggestionTaskContext{
			Title:    t.Title,
			Status:   t.Status.String(),
			Priority: t.Priority.String(),
		}
		if t.DueDate != nil {
			c.DueDate = t.DueDate.Format("2006-01-02")
		}
		taskCtx = append(taskCtx, c)
	}
	return taskCtx, nil
}

func buildSuggestionPrompt(contextJSON []byte, global bool) string {
	scopeLine := "a student project"
	if global {
		scopeLine = "a student's full portfolio of projects"
	}
	return fmt.Sprintf(`You are suggesting next tasks for %s.

Recent tasks:
%s

Suggest %d new tasks. Respond with a JSON array of objects of this exact shape:
[{"title": "...", "description": "...", "priority": "<low|medium|high>", "reasoning": "..."}]

Do not repeat existing tasks.`, scopeLine, contextJSON, suggestionCount)
}

// recordSuggestions appends one audit row per suggestion, best effort. Each
// row carries its own suggestion so the trail distinguishes the three
// results of a single call. Persistence failures are logged and never affect
// the returned list.
func (s *Insight) recordSuggestions(ctx context.Context, scope Scope, prompt string, contextJSON []byte, suggestions []TaskSuggestion) {
	var projectID *uint
	if !scope.IsGlobal() {
		id := scope.ProjectID
		projectID = &id
	}
	for i := range suggestions {
		suggestionJSON, err := json.Marshal(suggestions[i])
		if err != nil {
			logger.WarnWithFields("Failed to marshal suggestion for audit", map[string]interface{}{
				"user_id": scope.UserID,
				"error":   err.Error(),
			})
			return
		}
		record := &models.SuggestionRecord{
			ProjectID: projectID,
			UserID:    scope.UserID,
			Type:      models.AnalysisSuggestions,
			Prompt:    prompt,
			Response:  string(suggestionJSON),
			Context:   contextJSON,
		}
		if err := s.analysis.CreateSuggestionRecord(ctx, record); err != nil {
			logger.WarnWithFields("Failed to persist suggestion record", map[string]interface{}{
				"user_id": scope.UserID,
				"error":   err.Error(),
			})
			return
		}
	}
}
