package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingCourse struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `json:"description"`
	IsPublished bool             `gorm:"default:false" json:"is_published"`
	Modules     []TrainingModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (tc *TrainingCourse) BeforeCreate(tx *gorm.DB) error {
	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	return nil
}

// TrainingModule belongs to a course, not a franchise; it is shared content.
type TrainingModule struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	VideoURL  string    `json:"video_url"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (tm *TrainingModule) BeforeCreate(tx *gorm.DB) error {
	if tm.ID == uuid.Nil {
		tm.ID = uuid.New()
	}
	return nil
}
