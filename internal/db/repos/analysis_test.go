package repos

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

func newCacheEntry(projectID uint, analysisType models.AnalysisType, payload string, validUntil time.Time) *models.AnalysisCacheEntry {
	return &models.AnalysisCacheEntry{
		ProjectID:  projectID,
		Type:       analysisType,
		Payload:    json.RawMessage(payload),
		ValidUntil: validUntil,
	}
}

func TestAnalysisRepository_GetValidCacheEntry(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.CreateCacheEntry(ctx, newCacheEntry(1, models.AnalysisHealthScore, `{"score": 80}`, now.Add(time.Hour))))

	entry, err := repo.GetValidCacheEntry(ctx, 1, models.AnalysisHealthScore, now)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score": 80}`, string(entry.Payload))
}

func TestAnalysisRepository_GetValidCacheEntry_ExpiredIgnored(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.CreateCacheEntry(ctx, newCacheEntry(1, models.AnalysisHealthScore, `{"score": 80}`, now.Add(-time.Minute))))

	_, err := repo.GetValidCacheEntry(ctx, 1, models.AnalysisHealthScore, now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The expired row is ignored, not purged
	var count int64
	require.NoError(t, db.Model(&models.AnalysisCacheEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAnalysisRepository_GetValidCacheEntry_NewestWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()
	now := time.Now()

	older := newCacheEntry(1, models.AnalysisHealthScore, `{"score": 50}`, now.Add(time.Hour))
	newer := newCacheEntry(1, models.AnalysisHealthScore, `{"score": 90}`, now.Add(time.Hour))
	require.NoError(t, repo.CreateCacheEntry(ctx, older))
	require.NoError(t, repo.CreateCacheEntry(ctx, newer))
	require.NoError(t, db.Model(older).UpdateColumn("created_at", now.Add(-time.Hour)).Error)
	require.NoError(t, db.Model(newer).UpdateColumn("created_at", now).Error)

	entry, err := repo.GetValidCacheEntry(ctx, 1, models.AnalysisHealthScore, now)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score": 90}`, string(entry.Payload))
}

func TestAnalysisRepository_GetValidCacheEntry_KeyedByProjectAndType(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.CreateCacheEntry(ctx, newCacheEntry(1, models.AnalysisHealthScore, `{"score": 80}`, now.Add(time.Hour))))

	_, err := repo.GetValidCacheEntry(ctx, 2, models.AnalysisHealthScore, now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetValidCacheEntry(ctx, 1, models.AnalysisReport, now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAnalysisRepository_CacheEntryValidation(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	err := repo.CreateCacheEntry(ctx, &models.AnalysisCacheEntry{
		ProjectID:  1,
		Type:       models.AnalysisHealthScore,
		ValidUntil: time.Now().Add(time.Hour),
	})
	assert.Error(t, err, "empty payloads are rejected")
}

func TestAnalysisRepository_CreateSuggestionRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	projectID := uint(1)
	require.NoError(t, repo.CreateSuggestionRecord(ctx, &models.SuggestionRecord{
		ProjectID: &projectID,
		UserID:    7,
		Type:      models.AnalysisSuggestions,
		Prompt:    "suggest tasks",
		Response:  `[]`,
	}))

	var records []models.SuggestionRecord
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, uint(7), records[0].UserID)
	require.NotNil(t, records[0].ProjectID)
	assert.Equal(t, projectID, *records[0].ProjectID)
}
