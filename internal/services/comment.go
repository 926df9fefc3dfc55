package services

import (
	"context"
	"fmt"

	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

// Comment handles comment-related operations
type Comment struct {
	repo          *repos.CommentRepository
	tasks         *repos.TaskRepository
	notifications *repos.NotificationRepository
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(repo *repos.CommentRepository, tasks *repos.TaskRepository, notifications *repos.NotificationRepository) *Comment {
	return &Comment{
		repo:          repo,
		tasks:         tasks,
		notifications: notifications,
	}
}

// Create creates a new comment on a task and notifies the task creator
func (s *Comment) Create(ctx context.Context, comment *models.Comment) error {
	task, err := s.tasks.GetByID(ctx, comment.TaskID)
	if err != nil {
		return fmt.Errorf("failed to resolve task %d: %w", comment.TaskID, err)
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return err
	}

	if task.CreatorID != comment.AuthorID {
		taskID := task.ID
		notification := &models.Notification{
			UserID:  task.CreatorID,
			Type:    models.NotificationCommentAdded,
			Message: fmt.Sprintf("New comment on task %q", task.Title),
			TaskID:  &taskID,
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			logger.ErrorWithFields("Failed to create comment notification", map[string]interface{}{
				"task_id": task.ID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// ListByTask retrieves all comments for a task
func (s *Comment) ListByTask(ctx context.Context, taskID uint, opts *models.ListOptions) ([]models.Comment, error) {
	return s.repo.ListByTask(ctx, taskID, opts)
}

// Delete hard-deletes a comment by ID
func (s *Comment) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
