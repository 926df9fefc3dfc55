package services

import (
	"context"
	"sort"
	"time"

	"github.com/studyhub-dev/studyhub/internal/db/repos"
)

// DeadlineKind distinguishes project and task deadlines in the calendar feed
type DeadlineKind string

// Deadline kinds
const (
	// DeadlineProject marks a project due date
	DeadlineProject DeadlineKind = "project"
	// DeadlineTask marks a task due date
	DeadlineTask DeadlineKind = "task"
)

// Deadline is a single upcoming due date in a user's calendar
type Deadline struct {
	Kind      DeadlineKind `json:"kind"`
	ProjectID uint         `json:"project_id"`
	TaskID    *uint        `json:"task_id,omitempty"`
	Title     string       `json:"title"`
	DueDate   time.Time    `json:"due_date"`
}

// Calendar aggregates upcoming deadlines across a user's projects
type Calendar struct {
	projects *repos.ProjectRepository
	tasks    *repos.TaskRepository
}

// NewCalendarService creates a new instance of CalendarService
func NewCalendarService(projects *repos.ProjectRepository, tasks *repos.TaskRepository) *Calendar {
	return &Calendar{
		projects: projects,
		tasks:    tasks,
	}
}

// UpcomingDeadlines returns project and unfinished-task due dates for the
// owner that fall within the next `days` days, soonest first
func (s *Calendar) UpcomingDeadlines(ctx context.Context, ownerID uint, days int) ([]Deadline, error) {
	now := time.Now()
	until := now.AddDate(0, 0, days)

	projects, err := s.projects.List(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	deadlines := make([]Deadline, 0)
	projectIDs := make([]uint, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
		if p.DueDate != nil && !p.DueDate.Before(now) && !p.DueDate.After(until) {
			deadlines = append(deadlines, Deadline{
				Kind:      DeadlineProject,
				ProjectID: p.ID,
				Title:     p.Name,
				DueDate:   *p.DueDate,
			})
		}
	}

	if len(projectIDs) > 0 {
		tasks, err := s.tasks.ListDueBetween(ctx, projectIDs, now, until)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			taskID := t.ID
			deadlines = append(deadlines, Deadline{
				Kind:      DeadlineTask,
				ProjectID: t.ProjectID,
				TaskID:    &taskID,
				Title:     t.Title,
				DueDate:   *t.DueDate,
			})
		}
	}

	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(deadlines[j].DueDate)
	})
	return deadlines, nil
}
