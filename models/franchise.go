package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Franchise struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string             `gorm:"not null" json:"name"`
	OwnerID   uuid.UUID          `gorm:"type:uuid;not null" json:"owner_id"`
	Owner     User               `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Address   string             `json:"address"`
	City      string             `json:"city"`
	State     string             `json:"state"`
	CNPJ      string             `gorm:"column:cnpj" json:"cnpj"`
	Phone     string             `json:"phone"`
	Email     string             `json:"email"`
	IsActive  bool               `gorm:"default:true" json:"is_active"`
	Products  []FranchiseProduct `gorm:"foreignKey:FranchiseID" json:"products,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (f *Franchise) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FranchiseProduct is the allow-list of catalog products a franchise may sell.
// A franchise with no rows here sells the full catalog.
type FranchiseProduct struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID uuid.UUID `gorm:"type:uuid;not null;index" json:"franchise_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (fp *FranchiseProduct) BeforeCreate(tx *gorm.DB) error {
	if fp.ID == uuid.Nil {
		fp.ID = uuid.New()
	}
	return nil
}
