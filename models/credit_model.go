package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Credit struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	AvailableBalance int       `gorm:"not null;default:0" json:"available_balance"`
	ReservedBalance  int       `gorm:"not null;default:0" json:"reserved_balance"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *Credit) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
