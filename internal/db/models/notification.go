package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationType tags what kind of event a notification describes
type NotificationType string

// Notification type constants
const (
	// NotificationTaskAssigned is emitted when a task is assigned to a user
	NotificationTaskAssigned NotificationType = "task_assigned"
	// NotificationTaskDueSoon is emitted when a task's due date is approaching
	NotificationTaskDueSoon NotificationType = "task_due_soon"
	// NotificationCommentAdded is emitted when a comment lands on a watched task
	NotificationCommentAdded NotificationType = "comment_added"
)

// Notification represents an in-app notification delivered to a user
type Notification struct {
	gorm.Model
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"not null;index"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	TaskID    *uint            `json:"task_id,omitempty" gorm:"index"`
	Read      bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}
