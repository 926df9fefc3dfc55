package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// Scope selects what a metrics or insight computation covers: a single
// project, or every project owned by a user
type Scope struct {
	// ProjectID is the project to analyze; zero for global scope
	ProjectID uint
	// UserID is the requesting user; for global scope it selects which
	// projects are aggregated
	UserID uint
}

// ProjectScope returns a scope covering one project
func ProjectScope(userID, projectID uint) Scope {
	return Scope{ProjectID: projectID, UserID: userID}
}

// GlobalScope returns a scope covering all projects owned by a user
func GlobalScope(userID uint) Scope {
	return Scope{UserID: userID}
}

// IsGlobal reports whether the scope covers all of a user's projects
func (s Scope) IsGlobal() bool {
	return s.ProjectID == 0
}

// Metrics is the fixed task/deadline statistics tuple computed per scope
type Metrics struct {
	TotalTasks             int     `json:"totalTasks"`
	CompletedTasks         int     `json:"completedTasks"`
	InProgressTasks        int     `json:"inProgressTasks"`
	OverdueTasks           int     `json:"overdueTasks"`
	DaysUntilDeadline      *int    `json:"daysUntilDeadline"`
	TasksCompletedThisWeek int     `json:"tasksCompletedThisWeek"`
	AvgCompletionTime      float64 `json:"avgCompletionTime"`
}

// avgCompletionTimePlaceholder is a known stub: average completion time is
// not derived from task history yet.
const avgCompletionTimePlaceholder = 3.0

// completedThisWeekWindow is the lookback used for TasksCompletedThisWeek
const completedThisWeekWindow = 7 * 24 * time.Hour

// ComputeMetrics computes the metrics tuple for the given scope. Tasks are
// fetched first and "now" is taken afterwards, so overdue counts reflect
// wall-clock time at comparison, not at read.
func (s *Insight) ComputeMetrics(ctx context.Context, scope Scope) (*Metrics, error) {
	if scope.IsGlobal() {
		return s.computeGlobalMetrics(ctx, scope.UserID)
	}
	return s.computeProjectMetrics(ctx, scope.ProjectID)
}

func (s *Insight) computeProjectMetrics(ctx context.Context, projectID uint) (*Metrics, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %d: %w", projectID, err)
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for project %d: %w", projectID, err)
	}

	now := s.now()
	m := tallyTasks(tasks, now)
	if project.DueDate != nil {
		days := daysUntil(now, *project.DueDate)
		m.DaysUntilDeadline = &days
	}
	return m, nil
}

func (s *Insight) computeGlobalMetrics(ctx context.Context, userID uint) (*Metrics, error) {
	projects, err := s.projects.List(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for user %d: %w", userID, err)
	}

	// One fetch per project, issued concurrently. Results are simply
	// concatenated, so ordering between projects does not matter.
	taskLists := make([][]models.Task, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			tasks, err := s.tasks.ListByProject(gctx, p.ID, nil)
			if err != nil {
				return fmt.Errorf("failed to load tasks for project %d: %w", p.ID, err)
			}
			taskLists[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.Task
	for _, tasks := range taskLists {
		all = append(all, tasks...)
	}

	now := s.now()
	m := tallyTasks(all, now)

	// Nearest upcoming deadline across the whole portfolio; past due dates
	// do not count.
	for _, p := range projects {
		if p.DueDate == nil || !p.DueDate.After(now) {
			continue
		}
		days := daysUntil(now, *p.DueDate)
		if m.DaysUntilDeadline == nil || days < *m.DaysUntilDeadline {
			d := days
			m.DaysUntilDeadline = &d
		}
	}
	return m, nil
}

// tallyTasks counts the status-based metrics over a task slice
func tallyTasks(tasks []models.Task, now time.Time) *Metrics {
	m := &Metrics{
		TotalTasks:        len(tasks),
		AvgCompletionTime: avgCompletionTimePlaceholder,
	}
	weekAgo := now.Add(-completedThisWeekWindow)
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case models.TaskStatusDone:
			m.CompletedTasks++
			// updated_at stands in for a completion timestamp, so edits to
			// an already-done task refresh this count.
			if !t.UpdatedAt.Before(weekAgo) {
				m.TasksCompletedThisWeek++
			}
		case models.TaskStatusInProgress:
			m.InProgressTasks++
		}
		if t.IsOverdue(now) {
			m.OverdueTasks++
		}
	}
	return m
}

// daysUntil returns the ceiling of the whole days between now and due.
// Negative when due is in the past.
func daysUntil(now, due time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
