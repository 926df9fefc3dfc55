package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/logger"
)

// maxDocumentChars caps how much document text is embedded in the prompt
const maxDocumentChars = 12000

// noProviderMessage is the payload error returned when document analysis is
// requested without any configured provider
const noProviderMessage = "AI features not available"

// DocumentDeadline is a deadline the model extracted from a document
type DocumentDeadline struct {
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
}

// DocumentAnalysis is the structured result of analyzing a document
type DocumentAnalysis struct {
	Summary        string             `json:"summary"`
	Topics         []string           `json:"topics"`
	SuggestedTasks []TaskSuggestion   `json:"suggestedTasks"`
	Deadlines      []DocumentDeadline `json:"deadlines"`
	KeyConcepts    []string           `json:"keyConcepts"`
}

// DocumentAnalysisResult wraps an analysis with an error payload. When no
// provider is configured, Error is set and Analysis is nil; the caller must
// serve that payload rather than an HTTP error.
type DocumentAnalysisResult struct {
	Analysis *DocumentAnalysis `json:"analysis,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// textMimeTypes are the declared mime types whose buffers are decoded as text
var textMimeTypes = map[string]bool{
	"text/plain":       true,
	"text/markdown":    true,
	"text/csv":         true,
	"application/json": true,
}

// AnalyzeDocument analyzes raw document text. Empty text is a validation
// error; a missing provider yields an explicit error payload, not a Go error.
func (s *Insight) AnalyzeDocument(ctx context.Context, userID uint, text string) (*DocumentAnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("document text is required")
	}

	if !s.gateway.Available() {
		return &DocumentAnalysisResult{Error: noProviderMessage}, nil
	}

	if len(text) > maxDocumentChars {
		text = text[:maxDocumentChars]
	}

	// The date anchor lets the model resolve phrases like "next Friday"
	// into absolute due dates.
	prompt := fmt.Sprintf(`You are analyzing a course document for a student. Today's date is %s.

Document:
%s

Respond with a JSON object of this exact shape:
{"summary": "...", "topics": ["..."], "suggestedTasks": [{"title": "...", "description": "...", "priority": "<low|medium|high>", "reasoning": "..."}], "deadlines": [{"title": "...", "dueDate": "YYYY-MM-DD"}], "keyConcepts": ["..."]}

Use the date anchor to turn relative dates into absolute ones.`,
		s.now().Format("2006-01-02"), text)

	raw, err := s.gateway.Complete(ctx, prompt, ai.CompletionOptions{
		Temperature: 0.3,
		MaxTokens:   2048,
		JSONMode:    true,
	})
	if err != nil {
		logger.WarnWithFields("AI document analysis failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return &DocumentAnalysisResult{Error: noProviderMessage}, nil
	}

	var analysis DocumentAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		logger.WarnWithFields("AI document analysis response unparseable, returning empty analysis", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return &DocumentAnalysisResult{Analysis: &DocumentAnalysis{}}, nil
	}

	return &DocumentAnalysisResult{Analysis: &analysis}, nil
}

// AnalyzeDocumentBuffer analyzes an uploaded file buffer with a declared
// mime type. Only text-like mime types are supported.
func (s *Insight) AnalyzeDocumentBuffer(ctx context.Context, userID uint, buf []byte, mimeType string) (*DocumentAnalysisResult, error) {
	base := mimeType
	if idx := strings.Index(base, ";"); idx >= 0 {
		base = strings.TrimSpace(base[:idx])
	}
	if !textMimeTypes[base] {
		return nil, fmt.Errorf("unsupported mime type: %s", mimeType)
	}
	return s.AnalyzeDocument(ctx, userID, string(buf))
}
