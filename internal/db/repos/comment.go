package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// CommentRepository handles database operations for task comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

// Create creates a new comment in the database
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByTask retrieves all comments for a task ordered oldest first
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uint, opts *models.ListOptions) ([]models.Comment, error) {
	var comments []models.Comment
	query := r.db.WithContext(ctx).Where(models.Comment{TaskID: taskID})
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Order("created_at asc").Find(&comments).Error
	return comments, err
}

// Delete hard-deletes a comment by ID from the database
func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Comment{}, id).Error
}

// AttachmentRepository handles database operations for task attachments
type AttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db: db,
	}
}

// Create creates a new attachment row in the database
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// GetByID retrieves an attachment by ID from the database
func (r *AttachmentRepository) GetByID(ctx context.Context, id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByTask retrieves all attachments for a task
func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.WithContext(ctx).
		Where(models.Attachment{TaskID: taskID}).
		Order("created_at asc").
		Find(&attachments).Error
	return attachments, err
}

// Delete hard-deletes an attachment row by ID from the database
func (r *AttachmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Attachment{}, id).Error
}
