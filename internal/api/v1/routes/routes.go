// Package v1 registers the HTTP routes for the v1 API
package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studyhub-dev/studyhub/internal/api/v1/handlers"
)

// SetupRoutes configures all the v1 routes
func SetupRoutes(router fiber.Router, api *handlers.APIHandler) {
	userHandler := handlers.NewUserHandler(api)
	projectHandler := handlers.NewProjectHandler(api)
	taskHandler := handlers.NewTaskHandler(api)
	commentHandler := handlers.NewCommentHandler(api)
	channelHandler := handlers.NewChannelHandler(api)
	notificationHandler := handlers.NewNotificationHandler(api)
	calendarHandler := handlers.NewCalendarHandler(api)
	aiHandler := handlers.NewAIHandler(api)

	// User routes
	users := router.Group("/users")
	users.Post("/", userHandler.CreateUser)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)

	// Project routes
	projects := router.Group("/projects")
	projects.Post("/", projectHandler.CreateProject)
	projects.Get("/", projectHandler.ListProjects)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Put("/:id", projectHandler.UpdateProject)
	projects.Delete("/:id", projectHandler.DeleteProject)

	// Task routes nested under a project
	projects.Post("/:id/tasks", taskHandler.CreateTask)
	projects.Get("/:id/tasks", taskHandler.ListTasks)

	// Channel routes nested under a project
	projects.Post("/:id/channels", channelHandler.CreateChannel)
	projects.Get("/:id/channels", channelHandler.ListChannels)

	// Project-scoped AI routes
	projects.Get("/:id/ai/health", aiHandler.ProjectHealth)
	projects.Get("/:id/ai/suggestions", aiHandler.ProjectSuggestions)
	projects.Get("/:id/ai/report", aiHandler.ProjectReport)

	// Task routes
	tasks := router.Group("/tasks")
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Put("/:id", taskHandler.UpdateTask)
	tasks.Patch("/:id/move", taskHandler.MoveTask)
	tasks.Delete("/:id", taskHandler.DeleteTask)
	tasks.Post("/:id/comments", commentHandler.CreateComment)
	tasks.Get("/:id/comments", commentHandler.ListComments)
	tasks.Post("/:id/attachments", commentHandler.UploadAttachment)
	tasks.Get("/:id/attachments", commentHandler.ListAttachments)

	// Comment routes
	comments := router.Group("/comments")
	comments.Delete("/:id", commentHandler.DeleteComment)

	// Attachment routes
	attachments := router.Group("/attachments")
	attachments.Get("/:id/download", commentHandler.DownloadAttachment)

	// Channel message routes
	channels := router.Group("/channels")
	channels.Post("/:id/messages", channelHandler.PostMessage)
	channels.Get("/:id/messages", channelHandler.ListMessages)

	// Notification routes
	notifications := router.Group("/notifications")
	notifications.Get("/", notificationHandler.ListNotifications)
	notifications.Patch("/:id/read", notificationHandler.MarkNotificationRead)
	notifications.Patch("/read-all", notificationHandler.MarkAllNotificationsRead)

	// Calendar routes
	router.Get("/calendar/deadlines", calendarHandler.ListDeadlines)

	// Cross-project AI routes
	ai := router.Group("/ai")
	ai.Get("/global-health", aiHandler.GlobalHealth)
	ai.Get("/global-suggestions", aiHandler.GlobalSuggestions)
	ai.Get("/global-report", aiHandler.GlobalReport)
	ai.Post("/analyze-document", aiHandler.AnalyzeDocument)
}

// Register registers the v1 routes
func Register(app *fiber.App, api *handlers.APIHandler, protect ...fiber.Handler) {
	// API v1 routes
	v1Group := app.Group("/api/v1")
	for _, m := range protect {
		v1Group.Use(m)
	}
	SetupRoutes(v1Group, api)
}
