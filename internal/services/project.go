package services

import (
	"context"

	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

// Project handles project-related operations
type Project struct {
	repo     *repos.ProjectRepository
	channels *repos.ChannelRepository
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo *repos.ProjectRepository, channels *repos.ChannelRepository) *Project {
	return &Project{
		repo:     repo,
		channels: channels,
	}
}

// Create creates a new project together with its default messaging channel
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	if err := s.repo.Create(ctx, project); err != nil {
		return err
	}

	// Every project starts with a general channel. Failure here is logged
	// and does not roll back the project.
	channel := &models.Channel{
		ProjectID: project.ID,
		Name:      "general",
		Topic:     "Project discussion",
	}
	if err := s.channels.Create(ctx, channel); err != nil {
		logger.ErrorWithFields("Failed to create default channel", map[string]interface{}{
			"project_id": project.ID,
			"error":      err.Error(),
		})
	}
	return nil
}

// Get retrieves a project by ID
func (s *Project) Get(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.Get(ctx, id)
}

// GetOwned retrieves a project by ID, verifying ownership
func (s *Project) GetOwned(ctx context.Context, ownerID uint, id uint) (*models.Project, error) {
	return s.repo.GetOwned(ctx, ownerID, id)
}

// List retrieves all projects for an owner with pagination
func (s *Project) List(ctx context.Context, ownerID uint, opts *models.ListOptions) ([]models.Project, error) {
	return s.repo.List(ctx, ownerID, opts)
}

// Update updates an existing project
func (s *Project) Update(ctx context.Context, ownerID uint, project *models.Project) error {
	return s.repo.Update(ctx, ownerID, project)
}

// Delete soft-deletes a project by ID
func (s *Project) Delete(ctx context.Context, ownerID uint, id uint) error {
	return s.repo.Delete(ctx, ownerID, id)
}
