package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

// Report is the combined narrative progress report for a scope
type Report struct {
	Metrics         *Metrics     `json:"metrics"`
	Health          *HealthScore `json:"health"`
	Summary         string       `json:"summary"`
	Achievements    []string     `json:"achievements"`
	Attention       []string     `json:"attention"`
	Recommendations []string     `json:"recommendations"`
}

// reportNarrative is the AI-generated slice of a report
type reportNarrative struct {
	Summary         string   `json:"summary"`
	Achievements    []string `json:"achievements"`
	Attention       []string `json:"attention"`
	Recommendations []string `json:"recommendations"`
}

// Report produces a progress report for a scope. Metrics and health are
// always computed (health reuses its cache); the narrative comes from the
// provider when available and falls back to a templated summary otherwise.
func (s *Insight) Report(ctx context.Context, scope Scope) (*Report, error) {
	metrics, err := s.ComputeMetrics(ctx, scope)
	if err != nil {
		return nil, err
	}
	health, err := s.HealthScore(ctx, scope)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Metrics:         metrics,
		Health:          health,
		Summary:         templatedSummary(metrics, health),
		Achievements:    []string{},
		Attention:       []string{},
		Recommendations: []string{},
	}

	if !s.gateway.Available() {
		return report, nil
	}

	narrative, err := s.aiNarrative(ctx, metrics, health)
	if err != nil {
		logger.WarnWithFields("AI report narrative failed, using templated summary", map[string]interface{}{
			"project_id": scope.ProjectID,
			"error":      err.Error(),
		})
		return report, nil
	}

	report.Summary = narrative.Summary
	report.Achievements = narrative.Achievements
	report.Attention = narrative.Attention
	report.Recommendations = narrative.Recommendations
	return report, nil
}

func (s *Insight) aiNarrative(ctx context.Context, metrics *Metrics, health *HealthScore) (*reportNarrative, error) {
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	healthJSON, err := json.Marshal(health)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal health: %w", err)
	}

	prompt := fmt.Sprintf(`You are writing a short progress report for a student project.

Metrics:
%s

Health assessment:
%s

Respond with a JSON object of this exact shape:
{"summary": "...", "achievements": ["..."], "attention": ["..."], "recommendations": ["..."]}

Keep every list to at most three short items.`, metricsJSON, healthJSON)

	raw, err := s.gateway.Complete(ctx, prompt, ai.CompletionOptions{
		Temperature: 0.5,
		MaxTokens:   1024,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var narrative reportNarrative
	if err := json.Unmarshal([]byte(raw), &narrative); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if narrative.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ai.ErrMalformedResponse)
	}
	return &narrative, nil
}

func templatedSummary(metrics *Metrics, health *HealthScore) string {
	return fmt.Sprintf("Completed %d of %d tasks; health is %s (%d/100).",
		metrics.CompletedTasks, metrics.TotalTasks, health.Status, health.Score)
}
