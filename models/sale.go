package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sale struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"franchise_id"`
	ClientID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client      Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Total       float64        `gorm:"not null" json:"total"`
	Items       []SaleItem     `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SaleItem is scoped through its parent sale.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// Contract is the signed document attached to a sale; scoped through the sale.
type Contract struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SaleID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"sale_id"`
	Title     string     `gorm:"not null" json:"title"`
	Body      string     `json:"body"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (ct *Contract) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return nil
}
