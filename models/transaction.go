package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// NetworkFranchiseID marks a transaction recorded at the franchisor level
// rather than against a specific unit. Such rows never contribute to any
// franchise's profit.
var NetworkFranchiseID = uuid.Nil

type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID uuid.UUID       `gorm:"type:uuid;index" json:"franchise_id"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"` // income, expense
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
