package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusNegotiating LeadStatus = "negotiating"
	LeadStatusWon         LeadStatus = "won"
	LeadStatusLost        LeadStatus = "lost"
)

// IsValidLeadStatus reports whether s is one of the known pipeline statuses.
// Any status may follow any other; there is no transition state machine.
func IsValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusNegotiating, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

type Lead struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FranchiseID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"franchise_id"`
	ClientID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client          Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status          LeadStatus     `gorm:"not null;default:new" json:"status"`
	NegotiatedValue *float64       `json:"negotiated_value,omitempty"`
	Source          string         `json:"source"`
	Notes           []LeadNote     `gorm:"foreignKey:LeadID" json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LeadNote has no franchise_id of its own; its scope is the parent lead's.
type LeadNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LeadID    uuid.UUID `gorm:"type:uuid;not null;index" json:"lead_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid" json:"author_id"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *LeadNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
