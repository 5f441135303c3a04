package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditRecoveryCase struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"franchise_id"`
	ClientID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client      Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	DebtAmount  float64        `gorm:"not null" json:"debt_amount"`
	Status      string         `gorm:"default:open" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (cr *CreditRecoveryCase) BeforeCreate(tx *gorm.DB) error {
	if cr.ID == uuid.Nil {
		cr.ID = uuid.New()
	}
	return nil
}
