package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// AnalysisRepository handles database operations for AI analysis cache
// entries and suggestion audit records
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new instance of AnalysisRepository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{
		db: db,
	}
}

// CreateCacheEntry inserts a new cache row. Rows are never updated; a fresh
// result is a new insert that supersedes older rows by recency.
func (r *AnalysisRepository) CreateCacheEntry(ctx context.Context, entry *models.AnalysisCacheEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetValidCacheEntry retrieves the most recently created non-expired cache
// entry for a (project, type) pair, or gorm.ErrRecordNotFound if none is
// valid. Expired rows are ignored, not purged.
func (r *AnalysisRepository) GetValidCacheEntry(ctx context.Context, projectID uint, analysisType models.AnalysisType, now time.Time) (*models.AnalysisCacheEntry, error) {
	var entry models.AnalysisCacheEntry
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND type = ? AND valid_until > ?", projectID, analysisType, now).
		Order("created_at desc").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateSuggestionRecord appends a suggestion audit row
func (r *AnalysisRepository) CreateSuggestionRecord(ctx context.Context, record *models.SuggestionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
