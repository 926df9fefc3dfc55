package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// Create creates a new notification in the database
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser retrieves notifications for a user, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, opts *models.ListOptions) ([]models.Notification, error) {
	var notifications []models.Notification
	query := r.db.WithContext(ctx).Where(models.Notification{UserID: userID})
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

// ExistsForTask reports whether the user already has a notification of the
// given type for a task. Used to dedupe due-soon sweeps.
func (r *NotificationRepository) ExistsForTask(ctx context.Context, userID uint, taskID uint, notifType models.NotificationType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND task_id = ? AND type = ?", userID, taskID, notifType).
		Count(&count).Error
	return count > 0, err
}

// MarkRead marks a single notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, userID uint, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}

// MarkAllRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
