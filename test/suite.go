package test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/pkg/api/v1/client"
)

// DefaultTestTimeout is the default timeout for test suites.
const DefaultTestTimeout = 30 * time.Second

// TestUserID is the ID of the user the suite authenticates as.
const TestUserID uint = 1

// Suite encapsulates all components needed for integration testing.
// It provides a complete test setup with:
//   - File-based temporary database
//   - Real API server
//   - Real API client authenticated as a seeded user
//   - Scripted AI providers
type Suite struct {
	t *testing.T

	// Server components
	App    *fiber.App
	Server *httptest.Server

	// Client components
	APIClient client.Client

	// Database components
	DB               *gorm.DB
	UserRepo         *repos.UserRepository
	ProjectRepo      *repos.ProjectRepository
	TaskRepo         *repos.TaskRepository
	NotificationRepo *repos.NotificationRepository
	AnalysisRepo     *repos.AnalysisRepository

	// AI providers wired into the gateway, in priority order
	Providers []ai.Provider

	// Context management
	ctx        context.Context
	cancelFunc context.CancelFunc

	tmpDir  string
	cleanup func()
}

// NewSuite creates a new test suite wired to the given AI providers. With no
// providers, every AI feature runs its fallback path. The suite must be
// cleaned up after use by calling Cleanup.
func NewSuite(t *testing.T, providers ...ai.Provider) *Suite {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)

	suite := &Suite{
		t:          t,
		ctx:        ctx,
		cancelFunc: cancel,
		Providers:  providers,
	}

	suite.cleanup = func() {
		if suite.Server != nil {
			suite.Server.Close()
		}
		if suite.cancelFunc != nil {
			suite.cancelFunc()
		}
		if suite.DB != nil {
			CleanupTestDB(suite.DB, suite.tmpDir)
		}
	}

	SetupTestDB(suite)
	SetupServer(suite)

	return suite
}

// SetupTestDB configures the suite with a migrated database, repositories
// and a seeded test user
func SetupTestDB(suite *Suite) {
	db, tmpDir, err := NewFileBasedTestDB()
	require.NoError(suite.t, err, "Failed to create test database")
	require.NoError(suite.t, RunMigrations(db), "Failed to run migrations")

	suite.DB = db
	suite.tmpDir = tmpDir

	suite.UserRepo = repos.NewUserRepository(db)
	suite.ProjectRepo = repos.NewProjectRepository(db)
	suite.TaskRepo = repos.NewTaskRepository(db)
	suite.NotificationRepo = repos.NewNotificationRepository(db)
	suite.AnalysisRepo = repos.NewAnalysisRepository(db)

	_, err = suite.UserRepo.CreateUser(suite.ctx, &models.User{
		Username: "test",
		Email:    "test@example.com",
		Role:     models.UserRoleStudent,
	})
	require.NoError(suite.t, err, "Failed to create test user")
}

// Cleanup tears down the test suite, releasing all resources.
// This should be deferred immediately after creating the suite.
func (s *Suite) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Context returns the suite's context, which is automatically
// canceled when the suite is cleaned up.
func (s *Suite) Context() context.Context {
	return s.ctx
}

// Require returns a require.Assertions instance for this suite.
func (s *Suite) Require() *require.Assertions {
	return require.New(s.t)
}
