package services

import (
	"context"

	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
)

// Channel handles channel and message operations
type Channel struct {
	repo *repos.ChannelRepository
}

// NewChannelService creates a new instance of ChannelService
func NewChannelService(repo *repos.ChannelRepository) *Channel {
	return &Channel{
		repo: repo,
	}
}

// Create creates a new channel under a project
func (s *Channel) Create(ctx context.Context, channel *models.Channel) error {
	return s.repo.Create(ctx, channel)
}

// Get retrieves a channel by ID
func (s *Channel) Get(ctx context.Context, id uint) (*models.Channel, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByProject retrieves all channels for a project
func (s *Channel) ListByProject(ctx context.Context, projectID uint) ([]models.Channel, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// PostMessage appends a message to a channel
func (s *Channel) PostMessage(ctx context.Context, message *models.Message) error {
	if _, err := s.repo.GetByID(ctx, message.ChannelID); err != nil {
		return err
	}
	return s.repo.CreateMessage(ctx, message)
}

// ListMessages retrieves messages for a channel, newest first
func (s *Channel) ListMessages(ctx context.Context, channelID uint, opts *models.ListOptions) ([]models.Message, error) {
	return s.repo.ListMessages(ctx, channelID, opts)
}
