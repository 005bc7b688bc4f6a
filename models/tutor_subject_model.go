package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TutorSubject struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tutor_subject" json:"tutor_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tutor_subject" json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tutor   Profile `gorm:"foreignKey:TutorID" json:"-"`
	Subject Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (ts *TutorSubject) BeforeCreate(tx *gorm.DB) error {
	if ts.ID == uuid.Nil {
		ts.ID = uuid.New()
	}
	return nil
}
