package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

func TestComputeMetrics_ProjectScope(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	due := now.AddDate(0, 0, 5)
	project := seedProject(t, db, 1, "Thesis", &due)

	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)

	seedTask(t, db, project.ID, "Done recently", models.TaskStatusDone, nil, now.AddDate(0, 0, -2))
	seedTask(t, db, project.ID, "Done long ago", models.TaskStatusDone, nil, now.AddDate(0, 0, -20))
	seedTask(t, db, project.ID, "In progress", models.TaskStatusInProgress, &nextWeek, now)
	seedTask(t, db, project.ID, "Overdue todo", models.TaskStatusTodo, &yesterday, now)
	seedTask(t, db, project.ID, "Plain todo", models.TaskStatusTodo, nil, now)

	m, err := svc.ComputeMetrics(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)

	assert.Equal(t, 5, m.TotalTasks)
	assert.Equal(t, 2, m.CompletedTasks)
	assert.Equal(t, 1, m.InProgressTasks)
	assert.Equal(t, 1, m.OverdueTasks)
	assert.Equal(t, 1, m.TasksCompletedThisWeek, "only done tasks touched within the window count")
	require.NotNil(t, m.DaysUntilDeadline)
	assert.Equal(t, 5, *m.DaysUntilDeadline)
	assert.Equal(t, avgCompletionTimePlaceholder, m.AvgCompletionTime)
}

func TestComputeMetrics_OverdueDoneTaskIsNotOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	project := seedProject(t, db, 1, "Thesis", nil)
	yesterday := now.AddDate(0, 0, -1)
	seedTask(t, db, project.ID, "Finished late", models.TaskStatusDone, &yesterday, now)

	m, err := svc.ComputeMetrics(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.Zero(t, m.OverdueTasks)
	assert.Equal(t, 1, m.CompletedTasks)
}

func TestComputeMetrics_ProjectWithoutDueDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	project := seedProject(t, db, 1, "Thesis", nil)

	m, err := svc.ComputeMetrics(context.Background(), ProjectScope(1, project.ID))
	require.NoError(t, err)
	assert.Nil(t, m.DaysUntilDeadline)
	assert.Zero(t, m.TotalTasks)
}

func TestComputeMetrics_GlobalAggregatesAcrossProjects(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	dueNear := now.AddDate(0, 0, 3)
	dueFar := now.AddDate(0, 0, 10)
	duePast := now.AddDate(0, 0, -2)

	a := seedProject(t, db, 1, "Near deadline", &dueNear)
	b := seedProject(t, db, 1, "Far deadline", &dueFar)
	c := seedProject(t, db, 1, "Past deadline", &duePast)
	seedProject(t, db, 2, "Someone else's", &dueNear)

	seedTask(t, db, a.ID, "A done", models.TaskStatusDone, nil, now)
	seedTask(t, db, a.ID, "A todo", models.TaskStatusTodo, nil, now)
	seedTask(t, db, b.ID, "B in progress", models.TaskStatusInProgress, nil, now)
	seedTask(t, db, c.ID, "C done", models.TaskStatusDone, nil, now)

	m, err := svc.ComputeMetrics(context.Background(), GlobalScope(1))
	require.NoError(t, err)

	assert.Equal(t, 4, m.TotalTasks)
	assert.Equal(t, 2, m.CompletedTasks)
	assert.Equal(t, 1, m.InProgressTasks)
	require.NotNil(t, m.DaysUntilDeadline)
	assert.Equal(t, 3, *m.DaysUntilDeadline, "nearest future project deadline wins; past ones are ignored")
}

func TestComputeMetrics_GlobalNoFutureDeadlines(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestInsight(t, &fakeGateway{}, now)

	duePast := now.AddDate(0, 0, -5)
	seedProject(t, db, 1, "Past deadline", &duePast)
	seedProject(t, db, 1, "No deadline", nil)

	m, err := svc.ComputeMetrics(context.Background(), GlobalScope(1))
	require.NoError(t, err)
	assert.Nil(t, m.DaysUntilDeadline)
}

func TestComputeMetrics_GlobalNoProjects(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestInsight(t, &fakeGateway{}, now)

	m, err := svc.ComputeMetrics(context.Background(), GlobalScope(1))
	require.NoError(t, err)
	assert.Zero(t, m.TotalTasks)
	assert.Nil(t, m.DaysUntilDeadline)
}

func TestComputeMetrics_UnknownProject(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestInsight(t, &fakeGateway{}, now)

	_, err := svc.ComputeMetrics(context.Background(), ProjectScope(1, 999))
	assert.Error(t, err)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"five full days", now.AddDate(0, 0, 5), 5},
		{"half a day rounds up", now.Add(12 * time.Hour), 1},
		{"same instant", now, 0},
		{"yesterday", now.AddDate(0, 0, -1), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysUntil(now, tt.due))
		})
	}
}

func TestMetricsJSONShape(t *testing.T) {
	m := Metrics{TotalTasks: 3, AvgCompletionTime: avgCompletionTimePlaceholder}
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	payload := string(raw)

	// daysUntilDeadline serializes as an explicit null when unset
	assert.Contains(t, payload, `"daysUntilDeadline":null`)
	assert.Contains(t, payload, `"totalTasks":3`)
	assert.Contains(t, payload, `"tasksCompletedThisWeek":0`)
	assert.Contains(t, payload, `"avgCompletionTime":3`)
}
