package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/anjiri1684/tutor_marketplace/availability"
	"github.com/anjiri1684/tutor_marketplace/models"
	"gorm.io/gorm"
)

// GormStore reads availability straight from the relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WindowsForDay(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]availability.Window, error) {
	var rows []models.TutorAvailability
	err := s.db.WithContext(ctx).
		Where("tutor_id = ? AND start_datetime_utc >= ? AND start_datetime_utc <= ?", tutorID, dayStart.UTC(), dayEnd.UTC()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query tutor availability: %w", err)
	}

	windows := make([]availability.Window, 0, len(rows))
	for _, r := range rows {
		windows = append(windows, availability.Window{StartUTC: r.StartDatetimeUTC, EndUTC: r.EndDatetimeUTC})
	}
	return windows, nil
}

func (s *GormStore) ActiveBookingsForDay(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]availability.BookedInterval, error) {
	var rows []models.Booking
	err := s.db.WithContext(ctx).
		Select("start_datetime_utc", "end_datetime_utc").
		Where("tutor_id = ? AND status = ? AND start_datetime_utc >= ? AND start_datetime_utc <= ?", tutorID, models.BookingUpcoming, dayStart.UTC(), dayEnd.UTC()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}

	booked := make([]availability.BookedInterval, 0, len(rows))
	for _, r := range rows {
		booked = append(booked, availability.BookedInterval{StartUTC: r.StartDatetimeUTC, EndUTC: r.EndDatetimeUTC})
	}
	return booked, nil
}

func (s *GormStore) TutorsForSubject(ctx context.Context, subjectID string) ([]TutorSummary, error) {
	var rows []models.Profile
	err := s.db.WithContext(ctx).
		Joins("JOIN tutor_subjects ON tutor_subjects.tutor_id = profiles.id").
		Where("tutor_subjects.subject_id = ?", subjectID).
		Order("tutor_subjects.created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query tutor subjects: %w", err)
	}

	tutors := make([]TutorSummary, 0, len(rows))
	for _, p := range rows {
		tutors = append(tutors, TutorSummary{ID: p.ID.String(), FullName: p.FullName, AvatarURL: p.AvatarURL})
	}
	return tutors, nil
}

func (s *GormStore) TutorIDsWithAvailabilityAfter(ctx context.Context, tutorIDs []string, after time.Time) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(tutorIDs) == 0 {
		return found, nil
	}

	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.TutorAvailability{}).
		Distinct("tutor_id").
		Where("tutor_id IN ? AND end_datetime_utc > ?", tutorIDs, after.UTC()).
		Pluck("tutor_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("query tutor availability: %w", err)
	}

	for _, id := range ids {
		found[id] = true
	}
	return found, nil
}
