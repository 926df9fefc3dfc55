package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by ID from the database
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject retrieves all tasks for a specific project from the database
// ordered by kanban position
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.WithContext(ctx).Where(models.Task{ProjectID: projectID})
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Order("position asc").Find(&tasks).Error
	return tasks, err
}

// ListRecentByProject retrieves up to limit tasks for a project ordered by
// most recently updated
func (r *TaskRepository) ListRecentByProject(ctx context.Context, projectID uint, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where(models.Task{ProjectID: projectID}).
		Order("updated_at desc").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// Update updates an existing task in the database
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(task).Error
}

// UpdateStatus updates the status of a task in the database
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint, status models.TaskStatus) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).
		Update(models.TaskStatusField, status).Error
}

// Move updates a task's status and kanban position in one write
func (r *TaskRepository) Move(ctx context.Context, id uint, status models.TaskStatus, position int) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			models.TaskStatusField:   status,
			models.TaskPositionField: position,
		}).Error
}

// Delete hard-deletes a task by ID from the database
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Task{}, id).Error
}

// ListDueBetween retrieves all unfinished tasks for an owner's projects with
// a due date inside the given window
func (r *TaskRepository) ListDueBetween(ctx context.Context, projectIDs []uint, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Where("due_date >= ? AND due_date <= ?", from, to).
		Where("status <> ?", models.TaskStatusDone).
		Order("due_date asc").
		Find(&tasks).Error
	return tasks, err
}

// ListDueSoon retrieves all unfinished tasks, across every project, whose due
// date falls inside the given window
func (r *TaskRepository) ListDueSoon(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ?", from, to).
		Where("status <> ?", models.TaskStatusDone).
		Order("due_date asc").
		Find(&tasks).Error
	return tasks, err
}
