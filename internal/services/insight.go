package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

// CompletionGateway is the slice of the AI gateway the insight pipeline
// depends on
type CompletionGateway interface {
	Available() bool
	Complete(ctx context.Context, prompt string, opts ai.CompletionOptions) (string, error)
}

// HealthStatus is the categorical label attached to a numeric health score
type HealthStatus string

// Health status constants
const (
	// HealthExcellent covers scores of 80 and above
	HealthExcellent HealthStatus = "excellent"
	// HealthGood covers scores of 60 to 79
	HealthGood HealthStatus = "good"
	// HealthAtRisk covers scores of 40 to 59
	HealthAtRisk HealthStatus = "at_risk"
	// HealthCritical covers scores below 40
	HealthCritical HealthStatus = "critical"
)

// HealthScore is a 0-100 project wellness indicator with insights
type HealthScore struct {
	Score    int          `json:"score"`
	Status   HealthStatus `json:"status"`
	Insights []string     `json:"insights"`
}

// healthCacheTTL bounds how long an AI-computed health score is reused
const healthCacheTTL = time.Hour

// Insight turns metrics into health scores, task suggestions, and narrative
// reports, calling the provider gateway when one is configured and a
// deterministic fallback otherwise
type Insight struct {
	gateway  CompletionGateway
	projects *repos.ProjectRepository
	tasks    *repos.TaskRepository
	analysis *repos.AnalysisRepository
	now      func() time.Time
}

// NewInsightService creates a new instance of InsightService
func NewInsightService(gateway CompletionGateway, projects *repos.ProjectRepository, tasks *repos.TaskRepository, analysis *repos.AnalysisRepository) *Insight {
	return &Insight{
		gateway:  gateway,
		projects: projects,
		tasks:    tasks,
		analysis: analysis,
		now:      time.Now,
	}
}

// HealthScore computes the health score for a scope. Project-scoped results
// are cached for an hour; a valid cache row is returned verbatim without
// calling the provider. Provider and parse failures fall back to the
// deterministic formula and never surface to the caller.
func (s *Insight) HealthScore(ctx context.Context, scope Scope) (*HealthScore, error) {
	if !scope.IsGlobal() {
		if cached := s.cachedHealth(ctx, scope.ProjectID); cached != nil {
			return cached, nil
		}
	}

	metrics, err := s.ComputeMetrics(ctx, scope)
	if err != nil {
		return nil, err
	}

	if !s.gateway.Available() {
		return FallbackHealthScore(metrics), nil
	}

	health, err := s.aiHealthScore(ctx, metrics)
	if err != nil {
		logger.WarnWithFields("AI health score failed, using fallback formula", map[string]interface{}{
			"project_id": scope.ProjectID,
			"error":      err.Error(),
		})
		return FallbackHealthScore(metrics), nil
	}

	// Global health is not cached: cache rows carry a project foreign key.
	if !scope.IsGlobal() {
		s.cacheHealth(ctx, scope.ProjectID, health)
	}
	return health, nil
}

// cachedHealth returns a valid cached health score, or nil when none exists
// or the payload cannot be decoded
func (s *Insight) cachedHealth(ctx context.Context, projectID uint) *HealthScore {
	entry, err := s.analysis.GetValidCacheEntry(ctx, projectID, models.AnalysisHealthScore, s.now())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnWithFields("Health cache lookup failed", map[string]interface{}{
				"project_id": projectID,
				"error":      err.Error(),
			})
		}
		cacheLookups.WithLabelValues("miss").Inc()
		return nil
	}

	var health HealthScore
	if err := json.Unmarshal(entry.Payload, &health); err != nil {
		logger.WarnWithFields("Health cache payload is not decodable", map[string]interface{}{
			"project_id": projectID,
			"entry_id":   entry.ID,
			"error":      err.Error(),
		})
		cacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return &health
}

// cacheHealth best-effort persists a freshly computed health score. Cache
// write failures are logged and never block returning the result.
func (s *Insight) cacheHealth(ctx context.Context, projectID uint, health *HealthScore) {
	payload, err := json.Marshal(health)
	if err != nil {
		logger.Errorf("Failed to marshal health score for cache: %v", err)
		return
	}
	entry := &models.AnalysisCacheEntry{
		ProjectID:  projectID,
		Type:       models.AnalysisHealthScore,
		Payload:    payload,
		ValidUntil: s.now().Add(healthCacheTTL),
	}
	if err := s.analysis.CreateCacheEntry(ctx, entry); err != nil {
		logger.ErrorWithFields("Failed to write health cache entry", map[string]interface{}{
			"project_id": projectID,
			"error":      err.Error(),
		})
	}
}

// aiHealthScore asks the provider gateway for a health assessment
func (s *Insight) aiHealthScore(ctx context.Context, metrics *Metrics) (*HealthScore, error) {
	prompt, err := buildHealthPrompt(metrics)
	if err != nil {
		return nil, err
	}

	raw, err := s.gateway.Complete(ctx, prompt, ai.CompletionOptions{
		Temperature: 0.3,
		MaxTokens:   512,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var health HealthScore
	if err := json.Unmarshal([]byte(raw), &health); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if !validHealthStatus(health.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ai.ErrMalformedResponse, health.Status)
	}
	health.Score = clamp(health.Score, 0, 100)
	return &health, nil
}

func buildHealthPrompt(metrics *Metrics) (string, error) {
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metrics: %w", err)
	}
	return fmt.Sprintf(`You are assessing the health of a student project based on its task metrics.

Metrics:
%s

Respond with a JSON object of this exact shape:
{"score": <integer 0-100>, "status": "<excellent|good|at_risk|critical>", "insights": ["<short insight>", ...]}

Score 80+ is excellent, 60-79 good, 40-59 at_risk, below 40 critical.
Keep insights to at most three short sentences.`, metricsJSON), nil
}

func validHealthStatus(status HealthStatus) bool {
	switch status {
	case HealthExcellent, HealthGood, HealthAtRisk, HealthCritical:
		return true
	default:
		return false
	}
}

// FallbackHealthScore computes the deterministic health score used when no
// provider is configured or the AI path fails:
//
//	score = clamp(round(completionRate - overdueRatio*2), 0, 100)
//
// where completionRate and overdueRatio are percentages over total tasks,
// both zero when there are no tasks.
func FallbackHealthScore(metrics *Metrics) *HealthScore {
	var completionRate, overdueRatio float64
	if metrics.TotalTasks > 0 {
		completionRate = float64(metrics.CompletedTasks) / float64(metrics.TotalTasks) * 100
		overdueRatio = float64(metrics.OverdueTasks) / float64(metrics.TotalTasks) * 100
	}

	score := clamp(int(math.Round(completionRate-overdueRatio*2)), 0, 100)

	insights := []string{
		fmt.Sprintf("%d/%d tasks completed", metrics.CompletedTasks, metrics.TotalTasks),
	}
	if metrics.OverdueTasks > 0 {
		insights = append(insights, fmt.Sprintf("%d tasks overdue", metrics.OverdueTasks))
	} else {
		insights = append(insights, "No overdue tasks")
	}

	return &HealthScore{
		Score:    score,
		Status:   StatusForScore(score),
		Insights: insights,
	}
}

// StatusForScore maps a numeric score onto its categorical status
func StatusForScore(score int) HealthStatus {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthAtRisk
	default:
		return HealthCritical
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
