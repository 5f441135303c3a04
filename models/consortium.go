package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consortium is a consortium-quota sale. Its value is the gross revenue
// proxy used by the network health score.
type Consortium struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"franchise_id"`
	ClientID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client        Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Value         float64        `gorm:"not null" json:"value"`
	SalespersonID *uuid.UUID     `gorm:"type:uuid" json:"salesperson_id,omitempty"`
	Status        string         `gorm:"default:active" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName pins the table to "consortiums"; GORM's pluralizer would
// otherwise derive "consortia", disagreeing with the snapshot loader
// and the test schemas.
func (Consortium) TableName() string {
	return "consortiums"
}

func (co *Consortium) BeforeCreate(tx *gorm.DB) error {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return nil
}
