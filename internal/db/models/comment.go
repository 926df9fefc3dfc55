package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment left on a task
type Comment struct {
	gorm.Model
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Validate ensures that the comment data is valid
func (c *Comment) Validate() error {
	if c.Body == "" {
		return fmt.Errorf("comment body cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new comment
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	return c.Validate()
}

// Attachment represents file metadata attached to a task. The file bytes
// themselves live behind the storage layer, keyed by StorageKey.
type Attachment struct {
	gorm.Model
	TaskID     uint      `json:"task_id" gorm:"not null;index"`
	UploaderID uint      `json:"uploader_id" gorm:"not null;index"`
	FileName   string    `json:"file_name" gorm:"not null"`
	MimeType   string    `json:"mime_type" gorm:""`
	SizeBytes  int64     `json:"size_bytes" gorm:""`
	StorageKey string    `json:"-" gorm:"not null;uniqueIndex"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
