package handlers

import (
	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/internal/storage"
)

// APIHandler bundles the service dependencies shared by all handlers
type APIHandler struct {
	user         *services.User
	project      *services.Project
	task         *services.Task
	comment      *services.Comment
	channel      *services.Channel
	notification *services.Notification
	calendar     *services.Calendar
	insight      *services.Insight
	attachment   *services.Attachment
	files        storage.Store
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(
	user *services.User,
	project *services.Project,
	task *services.Task,
	comment *services.Comment,
	channel *services.Channel,
	notification *services.Notification,
	calendar *services.Calendar,
	insight *services.Insight,
	attachment *services.Attachment,
	files storage.Store,
) *APIHandler {
	return &APIHandler{
		user:         user,
		project:      project,
		task:         task,
		comment:      comment,
		channel:      channel,
		notification: notification,
		calendar:     calendar,
		insight:      insight,
		attachment:   attachment,
		files:        files,
	}
}

// getPaginationOptions returns a ListOptions struct from a 1-based page number
func getPaginationOptions(page int) *models.ListOptions {
	if page < 1 {
		page = 1
	}
	return &models.ListOptions{
		Limit:  models.DefaultLimit,
		Offset: (page - 1) * models.DefaultLimit,
	}
}
