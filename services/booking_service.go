package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/tutor_marketplace/availability"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidBookingTime = errors.New("booking must start before it ends on a single UTC day")
	ErrBookingInPast      = errors.New("booking cannot start in the past")
	ErrTutorNotFound      = errors.New("tutor not found")
	ErrSubjectNotTaught   = errors.New("tutor does not teach this subject")
	ErrSlotUnavailable    = errors.New("requested time is not within the tutor's free availability")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotBookingParty    = errors.New("you are not part of this booking")
	ErrBookingNotPending  = errors.New("only pending bookings can be answered")
	ErrInvalidTransition  = errors.New("booking status cannot be changed this way")
)

type CreateBookingInput struct {
	TutorID   uuid.UUID
	SubjectID uuid.UUID
	Start     time.Time
	End       time.Time
}

// CreateBooking books a pending session for the student and reserves its credits. The
// requested time has to fit inside one of the tutor's free slots for that day.
func CreateBooking(ctx context.Context, store repository.AvailabilityStore, studentID uuid.UUID, in CreateBookingInput, now time.Time) (*models.Booking, error) {
	start, end := in.Start.UTC(), in.End.UTC()
	if !start.Before(end) || start.Format(availability.DateLayout) != end.Format(availability.DateLayout) {
		return nil, ErrInvalidBookingTime
	}
	if start.Before(now) {
		return nil, ErrBookingInPast
	}

	var tutor models.Profile
	if err := database.DB.WithContext(ctx).First(&tutor, "id = ? AND role = ?", in.TutorID, models.RoleTutor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	var taught int64
	if err := database.DB.WithContext(ctx).Model(&models.TutorSubject{}).
		Where("tutor_id = ? AND subject_id = ?", in.TutorID, in.SubjectID).
		Count(&taught).Error; err != nil {
		return nil, fmt.Errorf("check tutor subject: %w", err)
	}
	if taught == 0 {
		return nil, ErrSubjectNotTaught
	}

	free, err := FreeSlotsForDay(ctx, store, in.TutorID.String(), start.Format(availability.DateLayout))
	if err != nil {
		return nil, err
	}
	if !availability.Covers(free, start, end) {
		return nil, ErrSlotUnavailable
	}

	duration := int(end.Sub(start).Minutes())
	booking := models.Booking{
		StudentID:        studentID,
		TutorID:          in.TutorID,
		SubjectID:        in.SubjectID,
		StartDatetimeUTC: start,
		EndDatetimeUTC:   end,
		DurationMinutes:  duration,
		CreditsRequired:  CreditsForDuration(duration),
		Status:           models.BookingPending,
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return ReserveCredits(tx, studentID, booking.CreditsRequired)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FreeSlotsForDay fetches one day of windows and upcoming bookings and resolves the free slots.
func FreeSlotsForDay(ctx context.Context, store repository.AvailabilityStore, tutorID, date string) ([]availability.FreeSlot, error) {
	dayStart, dayEnd, err := availability.DayRange(date)
	if err != nil {
		return nil, err
	}

	windows, err := store.WindowsForDay(ctx, tutorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	booked, err := store.ActiveBookingsForDay(ctx, tutorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return availability.ComputeFreeSlots(windows, booked), nil
}

func getBooking(tx *gorm.DB, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &booking, nil
}

// CancelBooking removes a pending booking and releases its credits. Bookings past the
// pending stage are not removed but flagged for review.
func CancelBooking(bookingID, userID uuid.UUID) (*models.Booking, error) {
	var booking *models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = getBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.StudentID != userID && booking.TutorID != userID {
			return ErrNotBookingParty
		}

		if booking.Status == models.BookingPending {
			return deleteAndRelease(tx, booking)
		}

		booking.Status = models.BookingPendingReview
		return tx.Model(booking).Update("status", booking.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func deleteAndRelease(tx *gorm.DB, booking *models.Booking) error {
	if err := tx.Delete(&models.Booking{}, "id = ?", booking.ID).Error; err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return ReleaseCredits(tx, booking.StudentID, booking.CreditsRequired)
}

// RespondToBooking lets the tutor accept a pending request, which makes it upcoming, or
// reject it, which cancels it.
func RespondToBooking(ctx context.Context, store repository.AvailabilityStore, bookingID, tutorID uuid.UUID, accept bool) (*models.Booking, error) {
	booking, err := getBooking(database.DB.WithContext(ctx), bookingID)
	if err != nil {
		return nil, err
	}
	if booking.TutorID != tutorID {
		return nil, ErrNotBookingParty
	}
	if booking.Status != models.BookingPending {
		return nil, ErrBookingNotPending
	}

	if !accept {
		err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return deleteAndRelease(tx, booking)
		})
		if err != nil {
			return nil, err
		}
		return booking, nil
	}

	free, err := FreeSlotsForDay(ctx, store, tutorID.String(), booking.StartDatetimeUTC.UTC().Format(availability.DateLayout))
	if err != nil {
		return nil, err
	}
	if !availability.Covers(free, booking.StartDatetimeUTC, booking.EndDatetimeUTC) {
		return nil, ErrSlotUnavailable
	}

	res := database.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingPending).
		Update("status", models.BookingUpcoming)
	if res.Error != nil {
		return nil, fmt.Errorf("accept booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrBookingNotPending
	}
	booking.Status = models.BookingUpcoming
	return booking, nil
}

// UpdateBookingStatus records how an upcoming session ended. Completed sessions and
// student no-shows spend the reserved credits, a tutor no-show gives them back.
func UpdateBookingStatus(bookingID, tutorID uuid.UUID, status string) (*models.Booking, error) {
	if !models.IsBookingStatus(status) {
		return nil, ErrInvalidTransition
	}

	var booking *models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = getBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.TutorID != tutorID {
			return ErrNotBookingParty
		}
		return transition(tx, booking, status)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func transition(tx *gorm.DB, booking *models.Booking, status string) error {
	if booking.Status != models.BookingUpcoming {
		return ErrInvalidTransition
	}

	switch status {
	case models.BookingCompleted, models.BookingStudentNoShow:
		if err := SettleCredits(tx, booking.StudentID, booking.CreditsRequired); err != nil {
			return err
		}
	case models.BookingTutorNoShow:
		if err := ReleaseCredits(tx, booking.StudentID, booking.CreditsRequired); err != nil {
			return err
		}
	default:
		return ErrInvalidTransition
	}

	booking.Status = status
	return tx.Model(booking).Update("status", status).Error
}

func ListStudentBookings(studentID uuid.UUID) ([]models.Booking, error) {
	return listBookings("student_id = ?", studentID)
}

func ListTutorBookings(tutorID uuid.UUID, status string) ([]models.Booking, error) {
	if status != "" {
		return listBookings("tutor_id = ? AND status = ?", tutorID, status)
	}
	return listBookings("tutor_id = ?", tutorID)
}

func listBookings(query string, args ...interface{}) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := database.DB.
		Preload("Student").
		Preload("Tutor").
		Preload("Subject").
		Where(query, args...).
		Order("start_datetime_utc desc").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

var ErrFeedbackNotAllowed = errors.New("feedback can only be left on completed bookings")

// SetMeetingLink attaches the session link to an upcoming booking.
func SetMeetingLink(bookingID uuid.UUID, link string) (*models.Booking, error) {
	booking, err := getBooking(database.DB, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingUpcoming {
		return nil, ErrInvalidTransition
	}

	booking.MeetingLink = &link
	if err := database.DB.Model(booking).Update("meeting_link", link).Error; err != nil {
		return nil, fmt.Errorf("set meeting link: %w", err)
	}
	return booking, nil
}

func SubmitFeedback(bookingID, studentID uuid.UUID, feedback string) (*models.Booking, error) {
	booking, err := getBooking(database.DB, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.StudentID != studentID {
		return nil, ErrNotBookingParty
	}
	if booking.Status != models.BookingCompleted {
		return nil, ErrFeedbackNotAllowed
	}

	booking.StudentFeedback = &feedback
	if err := database.DB.Model(booking).Update("student_feedback", feedback).Error; err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	return booking, nil
}
