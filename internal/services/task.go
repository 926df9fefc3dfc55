package services

import (
	"context"
	"fmt"

	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

// Task handles task-related operations
type Task struct {
	repo          *repos.TaskRepository
	projects      *repos.ProjectRepository
	notifications *repos.NotificationRepository
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(repo *repos.TaskRepository, projects *repos.ProjectRepository, notifications *repos.NotificationRepository) *Task {
	return &Task{
		repo:          repo,
		projects:      projects,
		notifications: notifications,
	}
}

// Create creates a new task under a project
func (s *Task) Create(ctx context.Context, task *models.Task) error {
	if _, err := s.projects.Get(ctx, task.ProjectID); err != nil {
		return fmt.Errorf("failed to resolve project %d: %w", task.ProjectID, err)
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return err
	}

	if task.AssigneeID != nil && *task.AssigneeID != task.CreatorID {
		s.notifyAssignment(ctx, task)
	}
	return nil
}

// Get retrieves a task by ID
func (s *Task) Get(ctx context.Context, id uint) (*models.Task, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByProject retrieves all tasks for a project ordered by kanban position
func (s *Task) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	return s.repo.ListByProject(ctx, projectID, opts)
}

// Update updates an existing task. Assigning the task to a new user emits a
// notification to the assignee.
func (s *Task) Update(ctx context.Context, task *models.Task) error {
	existing, err := s.repo.GetByID(ctx, task.ID)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return err
	}

	newAssignee := task.AssigneeID != nil &&
		(existing.AssigneeID == nil || *existing.AssigneeID != *task.AssigneeID)
	if newAssignee {
		s.notifyAssignment(ctx, task)
	}
	return nil
}

// Move updates a task's kanban status and position
func (s *Task) Move(ctx context.Context, id uint, status models.TaskStatus, position int) error {
	return s.repo.Move(ctx, id, status, position)
}

// Delete hard-deletes a task by ID
func (s *Task) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// notifyAssignment writes a task-assigned notification. Notification writes
// never block the task operation itself.
func (s *Task) notifyAssignment(ctx context.Context, task *models.Task) {
	taskID := task.ID
	notification := &models.Notification{
		UserID:  *task.AssigneeID,
		Type:    models.NotificationTaskAssigned,
		Message: fmt.Sprintf("You were assigned the task %q", task.Title),
		TaskID:  &taskID,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		logger.ErrorWithFields("Failed to create assignment notification", map[string]interface{}{
			"task_id": task.ID,
			"user_id": *task.AssigneeID,
			"error":   err.Error(),
		})
	}
}
