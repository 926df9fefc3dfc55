package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Project represents a student course project. Deleting a project is a soft
// delete: gorm.Model's DeletedAt is set and the row is excluded from default
// queries, so a project's tasks and history survive for later review.
type Project struct {
	gorm.Model
	OwnerID     uint       `json:"-" gorm:"not null;index"`
	Name        string     `json:"name" gorm:"not null;index"`
	Description string     `json:"description" gorm:"type:text"`
	CourseName  string     `json:"course_name" gorm:""`
	CourseCode  string     `json:"course_code" gorm:"index"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"index"`
	Progress    int        `json:"progress" gorm:"not null;default:0"`
	Tasks       []Task     `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("project progress must be between 0 and 100")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new project
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	return p.Validate()
}
