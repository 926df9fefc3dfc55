package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

func TestFallbackHealthScore(t *testing.T) {
	tests := []struct {
		name       string
		metrics    Metrics
		wantScore  int
		wantStatus HealthStatus
	}{
		{
			name:       "nearly complete project",
			metrics:    Metrics{TotalTasks: 10, CompletedTasks: 9},
			wantScore:  90,
			wantStatus: HealthExcellent,
		},
		{
			name:       "no tasks",
			metrics:    Metrics{},
			wantScore:  0,
			wantStatus: HealthCritical,
		},
		{
			name:       "overdue penalty clamps to zero",
			metrics:    Metrics{TotalTasks: 10, CompletedTasks: 2, OverdueTasks: 5},
			wantScore:  0,
			wantStatus: HealthCritical,
		},
		{
			name:       "overdue penalty lands at risk",
			metrics:    Metrics{TotalTasks: 10, CompletedTasks: 6, OverdueTasks: 1},
			wantScore:  40,
			wantStatus: HealthAtRisk,
		},
		{
			name:       "everything done",
			metrics:    Metrics{TotalTasks: 5, CompletedTasks: 5},
			wantScore:  100,
			wantStatus: HealthExcellent,
		},
		{
			name:       "rounding",
			metrics:    Metrics{TotalTasks: 3, CompletedTasks: 2},
			wantScore:  67,
			wantStatus: HealthGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackHealthScore(&tt.metrics)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.NotEmpty(t, got.Insights)
		})
	}
}

func TestFallbackHealthScore_Deterministic(t *testing.T) {
	metrics := &Metrics{TotalTasks: 8, CompletedTasks: 3, OverdueTasks: 2}
	first := FallbackHealthScore(metrics)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FallbackHealthScore(metrics))
	}
}

func TestFallbackHealthScore_Insights(t *testing.T) {
	got := FallbackHealthScore(&Metrics{TotalTasks: 4, CompletedTasks: 1, OverdueTasks: 2})
	require.Len(t, got.Insights, 2)
	assert.Equal(t, "1/4 tasks completed", got.Insights[0])
	assert.Equal(t, "2 tasks overdue", got.Insights[1])

	clean := FallbackHealthScore(&Metrics{TotalTasks: 4, CompletedTasks: 4})
	require.Len(t, clean.Insights, 2)
	assert.Equal(t, "No overdue tasks", clean.Insights[1])
}

func TestStatusForScore(t *testing.T) {
	tests := []struct {
		score int
		want  HealthStatus
	}{
		{100, HealthExcellent},
		{80, HealthExcellent},
		{79, HealthGood},
		{60, HealthGood},
		{59, HealthAtRisk},
		{40, HealthAtRisk},
		{39, HealthCritical},
		{0, HealthCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForScore(tt.score), "score %d", tt.score)
	}
}

func TestHealthScore_NoProviderUsesFallback(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: false}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Write intro", models.TaskStatusDone, nil, time.Time{})
	seedTask(t, db, project.ID, "Write outro", models.TaskStatusTodo, nil, time.Time{})

	health, err := svc.HealthScore(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)

	assert.Equal(t, 50, health.Score)
	assert.Equal(t, HealthAtRisk, health.Status)
	assert.Zero(t, gateway.calls)

	// The fallback path does not populate the cache
	var count int64
	require.NoError(t, db.Model(&models.AnalysisCacheEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHealthScore_AIResultIsCached(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `{"score": 72, "status": "good", "insights": ["Steady progress"]}`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Write intro", models.TaskStatusDone, nil, time.Time{})

	health, err := svc.HealthScore(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.Equal(t, 72, health.Score)
	assert.Equal(t, HealthGood, health.Status)
	assert.True(t, gateway.lastOpts.JSONMode)

	var entries []models.AnalysisCacheEntry
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, project.ID, entries[0].ProjectID)
	assert.Equal(t, models.AnalysisHealthScore, entries[0].Type)
	assert.Equal(t, now.Add(time.Hour), entries[0].ValidUntil.UTC())

	var cached HealthScore
	require.NoError(t, json.Unmarshal(entries[0].Payload, &cached))
	assert.Equal(t, *health, cached)
}

func TestHealthScore_ValidCacheSkipsProvider(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `{"score": 10, "status": "critical", "insights": []}`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	payload, _ := json.Marshal(HealthScore{Score: 85, Status: HealthExcellent, Insights: []string{"cached"}})
	require.NoError(t, db.Create(&models.AnalysisCacheEntry{
		ProjectID:  project.ID,
		Type:       models.AnalysisHealthScore,
		Payload:    payload,
		ValidUntil: now.Add(30 * time.Minute),
	}).Error)

	health, err := svc.HealthScore(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)

	assert.Equal(t, 85, health.Score)
	assert.Equal(t, []string{"cached"}, health.Insights)
	assert.Zero(t, gateway.calls, "a valid cache row must short-circuit the provider")
}

func TestHealthScore_ExpiredCacheTriggersRecompute(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `{"score": 64, "status": "good", "insights": ["fresh"]}`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	payload, _ := json.Marshal(HealthScore{Score: 85, Status: HealthExcellent, Insights: []string{"stale"}})
	require.NoError(t, db.Create(&models.AnalysisCacheEntry{
		ProjectID:  project.ID,
		Type:       models.AnalysisHealthScore,
		Payload:    payload,
		ValidUntil: now.Add(-time.Minute),
	}).Error)

	health, err := svc.HealthScore(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)

	assert.Equal(t, 64, health.Score)
	assert.Equal(t, 1, gateway.calls)

	// Insert-only cache: the stale row stays and a fresh one is appended
	var count int64
	require.NoError(t, db.Model(&models.AnalysisCacheEntry{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestHealthScore_ProviderFailureFallsBack(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, err: errors.New("provider down")}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Only task", models.TaskStatusDone, nil, time.Time{})

	health, err := svc.HealthScore(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.Equal(t, 100, health.Score)
	assert.Equal(t, HealthExcellent, health.Status)
}

func TestHealthScore_MalformedAIResponseFallsBack(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `{"score": 90, "status": "wonderful", "insights": []}`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Only task", models.TaskStatusDone, nil, time.Time{})

	health, err := svc.HealthScore(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)

	// Unknown status means the response is rejected in favor of the formula
	assert.Equal(t, HealthExcellent, health.Status)
	assert.Equal(t, 100, health.Score)
}

func TestHealthScore_GlobalIsNotCached(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `{"score": 70, "status": "good", "insights": []}`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	seedTask(t, db, project.ID, "Only task", models.TaskStatusDone, nil, time.Time{})

	health, err := svc.HealthScore(context.Background(), GlobalScope(1))
	require.NoError(t, err)
	assert.Equal(t, 70, health.Score)

	var count int64
	require.NoError(t, db.Model(&models.AnalysisCacheEntry{}).Count(&count).Error)
	assert.Zero(t, count, "global results must not be cached")

	// A second call hits the provider again
	_, err = svc.HealthScore(context.Background(), GlobalScope(1))
	require.NoError(t, err)
	assert.Equal(t, 2, gateway.calls)
}

func TestHealthScore_AIScoreClamped(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{available: true, response: `{"score": 140, "status": "excellent", "insights": []}`}
	svc, db := newTestInsight(t, gateway, now)

	project := seedProject(t, db, 1, "Thesis", nil)

	health, err := svc.HealthScore(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.Equal(t, 100, health.Score)
}
