package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// ChannelRepository handles database operations for channels and messages
type ChannelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new instance of ChannelRepository
func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{
		db: db,
	}
}

// Create creates a new channel in the database
func (r *ChannelRepository) Create(ctx context.Context, channel *models.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

// GetByID retrieves a channel by ID from the database
func (r *ChannelRepository) GetByID(ctx context.Context, id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.WithContext(ctx).First(&channel, id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

// ListByProject retrieves all channels for a project
func (r *ChannelRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.WithContext(ctx).
		Where(models.Channel{ProjectID: projectID}).
		Order("created_at asc").
		Find(&channels).Error
	return channels, err
}

// CreateMessage appends a message to a channel
func (r *ChannelRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListMessages retrieves messages for a channel ordered newest first
func (r *ChannelRepository) ListMessages(ctx context.Context, channelID uint, opts *models.ListOptions) ([]models.Message, error) {
	var messages []models.Message
	query := r.db.WithContext(ctx).Where(models.Message{ChannelID: channelID})
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Order("created_at desc").Find(&messages).Error
	return messages, err
}
