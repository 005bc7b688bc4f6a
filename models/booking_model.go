package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending       = "pending"
	BookingUpcoming      = "upcoming"
	BookingCompleted     = "completed"
	BookingStudentNoShow = "student_no_show"
	BookingTutorNoShow   = "tutor_no_show"
	BookingPendingReview = "pending_review"
)

var BookingStatuses = []string{
	BookingPending,
	BookingUpcoming,
	BookingCompleted,
	BookingStudentNoShow,
	BookingTutorNoShow,
	BookingPendingReview,
}

type Booking struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID        uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	TutorID          uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`
	SubjectID        uuid.UUID `gorm:"type:uuid;not null" json:"subject_id"`
	StartDatetimeUTC time.Time `gorm:"column:start_datetime_utc;not null;index" json:"start_datetime_utc"`
	EndDatetimeUTC   time.Time `gorm:"column:end_datetime_utc;not null" json:"end_datetime_utc"`
	DurationMinutes  int       `gorm:"column:duration_in_minutes;not null" json:"duration_in_minutes"`
	CreditsRequired  int       `gorm:"not null" json:"credits_required"`
	Status           string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	MeetingLink      *string   `gorm:"size:255" json:"meeting_link"`
	StudentFeedback  *string   `gorm:"type:text" json:"student_feedback"`

	Student Profile `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Tutor   Profile `gorm:"foreignKey:TutorID" json:"tutor,omitempty"`
	Subject Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func IsBookingStatus(status string) bool {
	for _, s := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}
