package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for task model
const (
	// TaskStatusField is the field name for task status
	TaskStatusField = "status"
	// TaskPositionField is the field name for the kanban ordering key
	TaskPositionField = "position"
)

// TaskStatus represents the kanban column a task currently sits in
type TaskStatus string

// Task status constants
const (
	// TaskStatusTodo indicates the task has not been started
	TaskStatusTodo TaskStatus = "todo"
	// TaskStatusInProgress indicates the task is being worked on
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusReview indicates the task is awaiting review
	TaskStatusReview TaskStatus = "review"
	// TaskStatusDone indicates the task is complete
	TaskStatusDone TaskStatus = "done"
)

// TaskPriority represents how urgent a task is
type TaskPriority string

// Task priority constants
const (
	// TaskPriorityLow is the lowest priority
	TaskPriorityLow TaskPriority = "low"
	// TaskPriorityMedium is the default priority
	TaskPriorityMedium TaskPriority = "medium"
	// TaskPriorityHigh is the highest priority
	TaskPriorityHigh TaskPriority = "high"
)

// Task represents a kanban task belonging to a project. Tasks are
// hard-deleted; only their parent project is soft-deleted.
type Task struct {
	gorm.Model
	ProjectID   uint         `json:"project_id" gorm:"not null;index"`
	CreatorID   uint         `json:"-" gorm:"not null;index"`
	AssigneeID  *uint        `json:"assignee_id,omitempty" gorm:"index"`
	Title       string       `json:"title" gorm:"not null;index"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"not null;index"`
	Priority    TaskPriority `json:"priority" gorm:"not null;index"`
	DueDate     *time.Time   `json:"due_date,omitempty" gorm:"index"`
	Progress    int          `json:"progress" gorm:"not null;default:0"`
	Position    int          `json:"position" gorm:"not null;default:0"`
	CreatedAt   time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"index"`
}

// MarshalJSON implements the json.Marshaler interface for Task
func (t Task) MarshalJSON() ([]byte, error) {
	type Alias Task // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(t))
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts a string to a TaskStatus type
func ParseTaskStatus(str string) (TaskStatus, error) {
	switch str {
	case string(TaskStatusTodo):
		return TaskStatusTodo, nil
	case string(TaskStatusInProgress):
		return TaskStatusInProgress, nil
	case string(TaskStatusReview):
		return TaskStatusReview, nil
	case string(TaskStatusDone):
		return TaskStatusDone, nil
	default:
		return "", fmt.Errorf("invalid task status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for TaskStatus
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseTaskStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// MarshalJSON implements json.Marshaler for TaskStatus
func (s *TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// String returns the string representation of the task priority
func (p TaskPriority) String() string {
	return string(p)
}

// ParseTaskPriority converts a string to a TaskPriority type
func ParseTaskPriority(str string) (TaskPriority, error) {
	switch str {
	case string(TaskPriorityLow):
		return TaskPriorityLow, nil
	case string(TaskPriorityMedium):
		return TaskPriorityMedium, nil
	case string(TaskPriorityHigh):
		return TaskPriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid task priority: %s", str)
	}
}

// IsOverdue reports whether the task has a due date in the past and is not done
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusDone
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task progress must be between 0 and 100")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	return t.Validate()
}
