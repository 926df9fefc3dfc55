package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Channel represents a messaging channel scoped to a project
type Channel struct {
	gorm.Model
	ProjectID uint      `json:"project_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null;index"`
	Topic     string    `json:"topic" gorm:""`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Validate ensures that the channel data is valid
func (c *Channel) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("channel name cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new channel
func (c *Channel) BeforeCreate(_ *gorm.DB) error {
	return c.Validate()
}

// Message represents a single message posted to a channel
type Message struct {
	gorm.Model
	ChannelID uint      `json:"channel_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Validate ensures that the message data is valid
func (m *Message) Validate() error {
	if m.Body == "" {
		return fmt.Errorf("message body cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new message
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	return m.Validate()
}
