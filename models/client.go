package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"franchise_id"`
	Name        string         `gorm:"not null" json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Document    string         `json:"document"`
	Address     string         `json:"address"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (cl *Client) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return nil
}
