package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

const (
	// dueSoonWindow is how far ahead the sweep looks for upcoming due dates
	dueSoonWindow = 24 * time.Hour
	// dueSoonSweepInterval is how often the sweep runs
	dueSoonSweepInterval = time.Hour
)

// Notification handles notification-related operations and runs the periodic
// due-soon sweep. The sweep has an explicit lifecycle: callers own StartSweep
// and Stop.
type Notification struct {
	repo  *repos.NotificationRepository
	tasks *repos.TaskRepository

	stop chan struct{}
	once sync.Once
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(repo *repos.NotificationRepository, tasks *repos.TaskRepository) *Notification {
	return &Notification{
		repo:  repo,
		tasks: tasks,
		stop:  make(chan struct{}),
	}
}

// ListByUser retrieves notifications for a user, newest first
func (s *Notification) ListByUser(ctx context.Context, userID uint, unreadOnly bool, opts *models.ListOptions) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, opts)
}

// MarkRead marks a single notification as read
func (s *Notification) MarkRead(ctx context.Context, userID uint, id uint) error {
	return s.repo.MarkRead(ctx, userID, id)
}

// MarkAllRead marks all of a user's notifications as read
func (s *Notification) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// StartSweep launches the periodic due-soon sweep
func (s *Notification) StartSweep() {
	go func() {
		ticker := time.NewTicker(dueSoonSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweepDueSoon(context.Background(), time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine. Safe to call more than once.
func (s *Notification) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// sweepDueSoon notifies assignees (or creators, for unassigned tasks) of
// unfinished tasks due within the window. Each task notifies a user at most
// once; failures are logged and skipped.
func (s *Notification) sweepDueSoon(ctx context.Context, now time.Time) {
	tasks, err := s.tasks.ListDueSoon(ctx, now, now.Add(dueSoonWindow))
	if err != nil {
		logger.Errorf("Due-soon sweep failed to list tasks: %v", err)
		return
	}

	for _, task := range tasks {
		recipient := task.CreatorID
		if task.AssigneeID != nil {
			recipient = *task.AssigneeID
		}

		exists, err := s.repo.ExistsForTask(ctx, recipient, task.ID, models.NotificationTaskDueSoon)
		if err != nil {
			logger.Errorf("Due-soon sweep failed to check task %d: %v", task.ID, err)
			continue
		}
		if exists {
			continue
		}

		taskID := task.ID
		notification := &models.Notification{
			UserID:  recipient,
			Type:    models.NotificationTaskDueSoon,
			Message: fmt.Sprintf("Task %q is due soon", task.Title),
			TaskID:  &taskID,
		}
		if err := s.repo.Create(ctx, notification); err != nil {
			logger.Errorf("Due-soon sweep failed to notify for task %d: %v", task.ID, err)
		}
	}
}
