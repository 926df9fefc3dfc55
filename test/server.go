package test

import (
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/golang-jwt/jwt/v5"

	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/api/middleware"
	"github.com/studyhub-dev/studyhub/internal/api/v1/handlers"
	v1 "github.com/studyhub-dev/studyhub/internal/api/v1/routes"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/internal/storage"
	"github.com/studyhub-dev/studyhub/pkg/api/v1/client"
)

// testClientTimeout is the timeout for test API client requests
const testClientTimeout = 5 * time.Second

// testJWTSecret signs the tokens the suite authenticates with
var testJWTSecret = []byte("test-secret")

// SetupServer configures the test suite with a real API server
func SetupServer(suite *Suite) {
	suite.App = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	suite.App.Use(middleware.Logger())

	files, err := storage.NewLocalStore(filepath.Join(suite.tmpDir, "uploads"))
	suite.Require().NoError(err, "Failed to create upload storage")

	commentRepo := repos.NewCommentRepository(suite.DB)
	attachmentRepo := repos.NewAttachmentRepository(suite.DB)
	channelRepo := repos.NewChannelRepository(suite.DB)

	gateway := ai.NewGateway(suite.Providers...)

	api := handlers.NewAPIHandler(
		services.NewUserService(suite.UserRepo),
		services.NewProjectService(suite.ProjectRepo, channelRepo),
		services.NewTaskService(suite.TaskRepo, suite.ProjectRepo, suite.NotificationRepo),
		services.NewCommentService(commentRepo, suite.TaskRepo, suite.NotificationRepo),
		services.NewChannelService(channelRepo),
		services.NewNotificationService(suite.NotificationRepo, suite.TaskRepo),
		services.NewCalendarService(suite.ProjectRepo, suite.TaskRepo),
		services.NewInsightService(gateway, suite.ProjectRepo, suite.TaskRepo, suite.AnalysisRepo),
		services.NewAttachmentService(attachmentRepo),
		files,
	)

	v1.Register(suite.App, api, middleware.Auth(testJWTSecret))

	// Serve the Fiber app over net/http so the real client can reach it
	suite.Server = httptest.NewServer(adaptor.FiberApp(suite.App))

	apiClient, err := client.NewClient(&client.Options{
		BaseURL:   suite.Server.URL,
		AuthToken: SignTestToken(suite, TestUserID),
		Timeout:   testClientTimeout,
	})
	suite.Require().NoError(err, "Failed to create API client")
	suite.APIClient = apiClient
}

// SignTestToken issues an HS256 token for the given user, signed with the
// suite's JWT secret
func SignTestToken(suite *Suite, userID uint) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testJWTSecret)
	suite.Require().NoError(err, "Failed to sign test token")
	return signed
}
