package services

import (
	"context"

	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
)

// Attachment handles attachment metadata operations
type Attachment struct {
	repo *repos.AttachmentRepository
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(repo *repos.AttachmentRepository) *Attachment {
	return &Attachment{
		repo: repo,
	}
}

// Create creates a new attachment metadata row
func (s *Attachment) Create(ctx context.Context, attachment *models.Attachment) error {
	return s.repo.Create(ctx, attachment)
}

// GetByID retrieves attachment metadata by ID
func (s *Attachment) GetByID(ctx context.Context, id uint) (*models.Attachment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByTask retrieves all attachment metadata for a task
func (s *Attachment) ListByTask(ctx context.Context, taskID uint) ([]models.Attachment, error) {
	return s.repo.ListByTask(ctx, taskID)
}

// Delete removes an attachment metadata row
func (s *Attachment) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
