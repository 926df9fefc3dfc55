package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID from the database. Soft-deleted projects are
// not returned.
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetOwned retrieves a project by ID, verifying ownership
func (r *ProjectRepository) GetOwned(ctx context.Context, ownerID uint, id uint) (*models.Project, error) {
	if err := models.ValidateOwnerID(ownerID); err != nil {
		return nil, fmt.Errorf("invalid owner_id: %w", err)
	}
	var project models.Project
	err := r.db.WithContext(ctx).Where(models.Project{OwnerID: ownerID}).First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects for an owner from the database with pagination
func (r *ProjectRepository) List(ctx context.Context, ownerID uint, opts *models.ListOptions) ([]models.Project, error) {
	if err := models.ValidateOwnerID(ownerID); err != nil {
		return nil, fmt.Errorf("invalid owner_id: %w", err)
	}
	var projects []models.Project
	query := r.db.WithContext(ctx)
	if opts != nil {
		if opts.IncludeDeleted {
			query = query.Unscoped()
		}
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Where(models.Project{OwnerID: ownerID}).Find(&projects).Error
	return projects, err
}

// Update updates an existing project in the database
func (r *ProjectRepository) Update(ctx context.Context, ownerID uint, project *models.Project) error {
	if err := models.ValidateOwnerID(ownerID); err != nil {
		return fmt.Errorf("invalid owner_id: %w", err)
	}
	return r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND owner_id = ?", project.ID, ownerID).
		Updates(project).Error
}

// Delete soft-deletes a project by ID. The row keeps its data and deletion
// timestamp; default queries stop returning it.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID uint, id uint) error {
	if err := models.ValidateOwnerID(ownerID); err != nil {
		return fmt.Errorf("invalid owner_id: %w", err)
	}
	return r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.Project{}, id).Error
}
