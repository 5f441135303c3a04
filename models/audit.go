package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit is a franchisor-conducted unit inspection.
type Audit struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"franchise_id"`
	AuditorID   uuid.UUID      `gorm:"type:uuid;not null" json:"auditor_id"`
	Score       int            `gorm:"not null" json:"score"`
	Notes       string         `json:"notes"`
	Date        time.Time      `gorm:"not null" json:"date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Audit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
