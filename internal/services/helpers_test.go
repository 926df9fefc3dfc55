package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Notification{},
		&models.AnalysisCacheEntry{},
		&models.SuggestionRecord{},
	))
	return db
}

// fakeGateway is a scripted CompletionGateway for insight tests
type fakeGateway struct {
	available  bool
	response   string
	err        error
	calls      int
	lastPrompt string
	lastOpts   ai.CompletionOptions
}

func (g *fakeGateway) Available() bool { return g.available }

func (g *fakeGateway) Complete(_ context.Context, prompt string, opts ai.CompletionOptions) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	g.lastOpts = opts
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

// newTestInsight wires an Insight service over a fresh database with a
// frozen clock
func newTestInsight(t *testing.T, gateway CompletionGateway, now time.Time) (*Insight, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewInsightService(
		gateway,
		repos.NewProjectRepository(db),
		repos.NewTaskRepository(db),
		repos.NewAnalysisRepository(db),
	)
	svc.now = func() time.Time { return now }
	return svc, db
}

// seedProject inserts a project owned by the given user
func seedProject(t *testing.T, db *gorm.DB, ownerID uint, name string, dueDate *time.Time) *models.Project {
	t.Helper()
	project := &models.Project{
		OwnerID: ownerID,
		Name:    name,
		DueDate: dueDate,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// seedTask inserts a task and optionally backdates its updated_at column
func seedTask(t *testing.T, db *gorm.DB, projectID uint, title string, status models.TaskStatus, dueDate *time.Time, updatedAt time.Time) *models.Task {
	t.Helper()
	task := &models.Task{
		ProjectID: projectID,
		CreatorID: 1,
		Title:     title,
		Status:    status,
		DueDate:   dueDate,
	}
	require.NoError(t, db.Create(task).Error)
	if !updatedAt.IsZero() {
		require.NoError(t, db.Model(task).UpdateColumn("updated_at", updatedAt).Error)
	}
	return task
}

func timePtr(v time.Time) *time.Time { return &v }
