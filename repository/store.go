package repository

import (
	"context"
	"time"

	"github.com/anjiri1684/tutor_marketplace/availability"
)

// TutorSummary is the public card of a tutor returned by subject searches.
type TutorSummary struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// AvailabilityStore is the read side the availability endpoints need from the backend.
// Day bounds are inclusive and always UTC.
type AvailabilityStore interface {
	WindowsForDay(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]availability.Window, error)
	ActiveBookingsForDay(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]availability.BookedInterval, error)
	TutorsForSubject(ctx context.Context, subjectID string) ([]TutorSummary, error)
	TutorIDsWithAvailabilityAfter(ctx context.Context, tutorIDs []string, after time.Time) (map[string]bool, error)
}

// FilterTutorsWithAvailability keeps the tutors that have a window ending after now, in input order.
func FilterTutorsWithAvailability(ctx context.Context, store AvailabilityStore, subjectID string, now time.Time) ([]TutorSummary, error) {
	tutors, err := store.TutorsForSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if len(tutors) == 0 {
		return []TutorSummary{}, nil
	}

	ids := make([]string, 0, len(tutors))
	for _, t := range tutors {
		ids = append(ids, t.ID)
	}

	withAvailability, err := store.TutorIDsWithAvailabilityAfter(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	filtered := []TutorSummary{}
	for _, t := range tutors {
		if withAvailability[t.ID] {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}
