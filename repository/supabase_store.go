package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/anjiri1684/tutor_marketplace/availability"
	"github.com/anjiri1684/tutor_marketplace/models"
	supa "github.com/nedpals/supabase-go"
	"go.uber.org/zap"
)

const (
	supabaseQueryTimeout = 10 * time.Second
	isoMillis            = "2006-01-02T15:04:05.000Z"
)

// SupabaseStore reads availability through the PostgREST API of a hosted Supabase project.
// The underlying client has no timeout support, so every call runs in a goroutine that is
// abandoned once the context or supabaseQueryTimeout expires. After any failure the client
// is rebuilt on the next call.
type SupabaseStore struct {
	url    string
	key    string
	schema string

	mu              sync.Mutex
	client          *supa.Client
	shouldReconnect bool
	logger          *zap.Logger
}

func NewSupabaseStore(url, key, schema string, logger *zap.Logger) (*SupabaseStore, error) {
	if url == "" || key == "" {
		return nil, errors.New("supabase url and key are required")
	}
	return &SupabaseStore{
		url:             url,
		key:             key,
		schema:          schema,
		shouldReconnect: true,
		logger:          logger.With(zap.String("host", url)),
	}, nil
}

type timeRangeRow struct {
	StartDatetimeUTC time.Time `json:"start_datetime_utc"`
	EndDatetimeUTC   time.Time `json:"end_datetime_utc"`
}

type tutorSubjectRow struct {
	TutorID  string `json:"tutor_id"`
	Profiles struct {
		ID        string  `json:"id"`
		FullName  string  `json:"full_name"`
		AvatarURL *string `json:"avatar_url"`
	} `json:"profiles"`
}

type tutorIDRow struct {
	TutorID string `json:"tutor_id"`
}

func (s *SupabaseStore) WindowsForDay(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]availability.Window, error) {
	var rows []timeRangeRow
	err := s.run(ctx, "tutor_availability", func(c *supa.Client) error {
		return c.DB.From("tutor_availability").
			Select("start_datetime_utc", "end_datetime_utc").
			Eq("tutor_id", tutorID).
			Gte("start_datetime_utc", dayStart.UTC().Format(isoMillis)).
			Lte("start_datetime_utc", dayEnd.UTC().Format(isoMillis)).
			Execute(&rows)
	})
	if err != nil {
		return nil, err
	}

	windows := make([]availability.Window, 0, len(rows))
	for _, r := range rows {
		windows = append(windows, availability.Window{StartUTC: r.StartDatetimeUTC, EndUTC: r.EndDatetimeUTC})
	}
	return windows, nil
}

func (s *SupabaseStore) ActiveBookingsForDay(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]availability.BookedInterval, error) {
	var rows []timeRangeRow
	err := s.run(ctx, "bookings", func(c *supa.Client) error {
		return c.DB.From("bookings").
			Select("start_datetime_utc", "end_datetime_utc").
			Eq("tutor_id", tutorID).
			Eq("status", models.BookingUpcoming).
			Gte("start_datetime_utc", dayStart.UTC().Format(isoMillis)).
			Lte("start_datetime_utc", dayEnd.UTC().Format(isoMillis)).
			Execute(&rows)
	})
	if err != nil {
		return nil, err
	}

	booked := make([]availability.BookedInterval, 0, len(rows))
	for _, r := range rows {
		booked = append(booked, availability.BookedInterval{StartUTC: r.StartDatetimeUTC, EndUTC: r.EndDatetimeUTC})
	}
	return booked, nil
}

func (s *SupabaseStore) TutorsForSubject(ctx context.Context, subjectID string) ([]TutorSummary, error) {
	var rows []tutorSubjectRow
	err := s.run(ctx, "tutor_subjects", func(c *supa.Client) error {
		return c.DB.From("tutor_subjects").
			Select("tutor_id", "profiles!inner(id,full_name,avatar_url)").
			Eq("subject_id", subjectID).
			Execute(&rows)
	})
	if err != nil {
		return nil, err
	}

	tutors := make([]TutorSummary, 0, len(rows))
	for _, r := range rows {
		tutors = append(tutors, TutorSummary{ID: r.Profiles.ID, FullName: r.Profiles.FullName, AvatarURL: r.Profiles.AvatarURL})
	}
	return tutors, nil
}

func (s *SupabaseStore) TutorIDsWithAvailabilityAfter(ctx context.Context, tutorIDs []string, after time.Time) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(tutorIDs) == 0 {
		return found, nil
	}

	var rows []tutorIDRow
	err := s.run(ctx, "tutor_availability", func(c *supa.Client) error {
		return c.DB.From("tutor_availability").
			Select("tutor_id").
			In("tutor_id", tutorIDs).
			Gt("end_datetime_utc", after.UTC().Format(isoMillis)).
			Execute(&rows)
	})
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		found[r.TutorID] = true
	}
	return found, nil
}

func (s *SupabaseStore) run(ctx context.Context, table string, query func(c *supa.Client) error) error {
	client := s.currentClient()

	ctx, cancel := context.WithTimeout(ctx, supabaseQueryTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- query(client)
	}()

	select {
	case <-ctx.Done():
		s.setShouldReconnect()
		return fmt.Errorf("query %s: %w", table, ctx.Err())
	case err := <-errCh:
		if err != nil {
			s.setShouldReconnect()
			return fmt.Errorf("query %s: %w", table, err)
		}
		return nil
	}
}

func (s *SupabaseStore) currentClient() *supa.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shouldReconnect || s.client == nil {
		client := supa.CreateClient(s.url, s.key)
		client.DB.AddHeader("Accept-Profile", s.schema)
		client.DB.AddHeader("Content-Profile", s.schema)

		s.client = client
		s.shouldReconnect = false
		s.logger.Info("Created supabase client")
	}
	return s.client
}

func (s *SupabaseStore) setShouldReconnect() {
	s.mu.Lock()
	s.shouldReconnect = true
	s.mu.Unlock()
}
