package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"franchise_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	AssigneeID  *uuid.UUID     `gorm:"type:uuid" json:"assignee_id,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Done        bool           `gorm:"default:false" json:"done"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
