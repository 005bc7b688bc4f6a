package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/tutor_marketplace/availability"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	return db
}

func createTutor(t *testing.T, db *gorm.DB, name string) models.Profile {
	t.Helper()
	tutor := models.Profile{Role: models.RoleTutor, FullName: name}
	require.NoError(t, db.Create(&tutor).Error)
	return tutor
}

func TestGormStore_DayQueries(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	tutor := createTutor(t, db, "Ada Lovelace")
	other := createTutor(t, db, "Alan Turing")
	dayStart, dayEnd, err := availability.DayRange("2025-03-14")
	require.NoError(t, err)

	require.NoError(t, db.Create(&[]models.TutorAvailability{
		{TutorID: tutor.ID, StartDatetimeUTC: day.Add(9 * time.Hour), EndDatetimeUTC: day.Add(17 * time.Hour)},
		{TutorID: tutor.ID, StartDatetimeUTC: day.Add(33 * time.Hour), EndDatetimeUTC: day.Add(35 * time.Hour)},
		{TutorID: other.ID, StartDatetimeUTC: day.Add(9 * time.Hour), EndDatetimeUTC: day.Add(10 * time.Hour)},
	}).Error)

	subject := models.Subject{Name: "Mathematics"}
	require.NoError(t, db.Create(&subject).Error)
	student := models.Profile{Role: models.RoleStudent, FullName: "Student One"}
	require.NoError(t, db.Create(&student).Error)

	newBooking := func(start, end time.Duration, status string) models.Booking {
		return models.Booking{
			StudentID: student.ID, TutorID: tutor.ID, SubjectID: subject.ID,
			StartDatetimeUTC: day.Add(start), EndDatetimeUTC: day.Add(end),
			DurationMinutes: int((end - start).Minutes()), CreditsRequired: 2, Status: status,
		}
	}
	require.NoError(t, db.Create(&[]models.Booking{
		newBooking(12*time.Hour, 13*time.Hour, models.BookingUpcoming),
		newBooking(14*time.Hour, 15*time.Hour, models.BookingPending),
		newBooking(15*time.Hour, 16*time.Hour, models.BookingCompleted),
		newBooking(34*time.Hour, 35*time.Hour, models.BookingUpcoming),
	}).Error)

	windows, err := store.WindowsForDay(ctx, tutor.ID.String(), dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.True(t, windows[0].StartUTC.Equal(day.Add(9*time.Hour)))
	assert.True(t, windows[0].EndUTC.Equal(day.Add(17*time.Hour)))

	booked, err := store.ActiveBookingsForDay(ctx, tutor.ID.String(), dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.True(t, booked[0].StartUTC.Equal(day.Add(12*time.Hour)))

	slots := availability.ComputeFreeSlots(windows, booked)
	assert.Equal(t, []availability.FreeSlot{{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}, slots)
}

func TestGormStore_FilterTutorsWithAvailability(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	now := day.Add(12 * time.Hour)

	withFuture := createTutor(t, db, "Future Window")
	withPast := createTutor(t, db, "Past Window")
	notTeaching := createTutor(t, db, "Other Subject")

	maths := models.Subject{Name: "Mathematics"}
	physics := models.Subject{Name: "Physics"}
	require.NoError(t, db.Create(&maths).Error)
	require.NoError(t, db.Create(&physics).Error)

	require.NoError(t, db.Create(&models.TutorSubject{TutorID: withFuture.ID, SubjectID: maths.ID}).Error)
	require.NoError(t, db.Create(&models.TutorSubject{TutorID: withPast.ID, SubjectID: maths.ID}).Error)
	require.NoError(t, db.Create(&models.TutorSubject{TutorID: notTeaching.ID, SubjectID: physics.ID}).Error)

	require.NoError(t, db.Create(&[]models.TutorAvailability{
		{TutorID: withFuture.ID, StartDatetimeUTC: now.Add(time.Hour), EndDatetimeUTC: now.Add(2 * time.Hour)},
		{TutorID: withFuture.ID, StartDatetimeUTC: now.Add(3 * time.Hour), EndDatetimeUTC: now.Add(4 * time.Hour)},
		{TutorID: withPast.ID, StartDatetimeUTC: now.Add(-3 * time.Hour), EndDatetimeUTC: now.Add(-time.Hour)},
		{TutorID: notTeaching.ID, StartDatetimeUTC: now.Add(time.Hour), EndDatetimeUTC: now.Add(2 * time.Hour)},
	}).Error)

	tutors, err := FilterTutorsWithAvailability(context.Background(), store, maths.ID.String(), now)
	require.NoError(t, err)
	require.Len(t, tutors, 1)
	assert.Equal(t, withFuture.ID.String(), tutors[0].ID)
	assert.Equal(t, "Future Window", tutors[0].FullName)

	tutors, err = FilterTutorsWithAvailability(context.Background(), store, uuid.NewString(), now)
	require.NoError(t, err)
	assert.Equal(t, []TutorSummary{}, tutors)
}

type failingStore struct {
	GormStore
	err error
}

func (f *failingStore) TutorIDsWithAvailabilityAfter(ctx context.Context, tutorIDs []string, after time.Time) (map[string]bool, error) {
	return nil, f.err
}

func TestFilterTutorsWithAvailability_PropagatesErrors(t *testing.T) {
	db := newTestDB(t)
	tutor := createTutor(t, db, "Tutor")
	subject := models.Subject{Name: "Chemistry"}
	require.NoError(t, db.Create(&subject).Error)
	require.NoError(t, db.Create(&models.TutorSubject{TutorID: tutor.ID, SubjectID: subject.ID}).Error)

	boom := errors.New("boom")
	store := &failingStore{GormStore: *NewGormStore(db), err: boom}

	_, err := FilterTutorsWithAvailability(context.Background(), store, subject.ID.String(), day)
	assert.ErrorIs(t, err, boom)
}
