package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TutorAvailability is one window of time a tutor published as bookable.
type TutorAvailability struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TutorID          uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`
	StartDatetimeUTC time.Time `gorm:"column:start_datetime_utc;not null;index" json:"start_datetime_utc"`
	EndDatetimeUTC   time.Time `gorm:"column:end_datetime_utc;not null" json:"end_datetime_utc"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (TutorAvailability) TableName() string {
	return "tutor_availability"
}

func (a *TutorAvailability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
