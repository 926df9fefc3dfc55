package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AnalysisType tags what kind of AI analysis a cache row or suggestion
// record belongs to
type AnalysisType string

// Analysis type constants
const (
	// AnalysisHealthScore is the project health score analysis
	AnalysisHealthScore AnalysisType = "health_score"
	// AnalysisSuggestions is the task suggestion analysis
	AnalysisSuggestions AnalysisType = "task_suggestions"
	// AnalysisReport is the narrative progress report analysis
	AnalysisReport AnalysisType = "progress_report"
	// AnalysisDocument is the document analysis
	AnalysisDocument AnalysisType = "document_analysis"
)

// AnalysisCacheEntry is a time-bounded stored AI result keyed by
// (project, type). Rows are insert-only: a fresh result supersedes older
// rows by being newer, expired rows are ignored rather than purged.
// ProjectID is non-nullable with an FK to projects, which is why
// global-scope results are never cached here.
type AnalysisCacheEntry struct {
	gorm.Model
	ProjectID  uint            `json:"project_id" gorm:"not null;index:idx_analysis_lookup"`
	Type       AnalysisType    `json:"type" gorm:"not null;index:idx_analysis_lookup"`
	Payload    json.RawMessage `json:"payload" gorm:"type:jsonb;not null"`
	ValidUntil time.Time       `json:"valid_until" gorm:"not null;index"`
	CreatedAt  time.Time       `json:"created_at" gorm:"index"`
}

// IsValid reports whether the entry is still within its validity window
func (e *AnalysisCacheEntry) IsValid(now time.Time) bool {
	return e.ValidUntil.After(now)
}

// Validate ensures that the cache entry data is valid
func (e *AnalysisCacheEntry) Validate() error {
	if e.Type == "" {
		return fmt.Errorf("analysis type cannot be empty")
	}
	if len(e.Payload) == 0 {
		return fmt.Errorf("analysis payload cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new cache entry
func (e *AnalysisCacheEntry) BeforeCreate(_ *gorm.DB) error {
	return e.Validate()
}

// SuggestionRecord is an append-only audit row recording a prompt sent to a
// provider and the raw response. ProjectID is nullable: global-scope
// suggestions have no project. The pipeline never reads these back.
type SuggestionRecord struct {
	gorm.Model
	ProjectID *uint           `json:"project_id,omitempty" gorm:"index"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Type      AnalysisType    `json:"type" gorm:"not null;index"`
	Prompt    string          `json:"prompt" gorm:"type:text"`
	Response  string          `json:"response" gorm:"type:text"`
	Context   json.RawMessage `json:"context,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
}
