package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateBookingRequest struct {
	TutorID          string    `json:"tutor_id" validate:"required,uuid"`
	SubjectID        string    `json:"subject_id" validate:"required,uuid"`
	StartDatetimeUTC time.Time `json:"start_datetime_utc" validate:"required"`
	EndDatetimeUTC   time.Time `json:"end_datetime_utc" validate:"required"`
}

type RespondBookingRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed student_no_show tutor_no_show"`
}

// bookingError maps booking and credit failures onto HTTP answers.
func bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidBookingTime),
		errors.Is(err, services.ErrBookingInPast),
		errors.Is(err, services.ErrSubjectNotTaught),
		errors.Is(err, services.ErrInsufficientCredits),
		errors.Is(err, services.ErrFeedbackNotAllowed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrTutorNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrCreditsNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotBookingParty):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrBookingNotPending),
		errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	utils.GetLogger().Error("Booking operation failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process booking"})
}

func CreateBooking(store repository.AvailabilityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, err := middleware.CurrentUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
		}

		var req CreateBookingRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		tutorID, _ := uuid.Parse(req.TutorID)
		subjectID, _ := uuid.Parse(req.SubjectID)
		if tutorID == studentID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot book yourself"})
		}

		booking, err := services.CreateBooking(c.UserContext(), store, studentID, services.CreateBookingInput{
			TutorID:   tutorID,
			SubjectID: subjectID,
			Start:     req.StartDatetimeUTC,
			End:       req.EndDatetimeUTC,
		}, time.Now().UTC())
		if err != nil {
			return bookingError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Booking requested. Credits are reserved until the tutor responds.",
			"booking": booking,
		})
	}
}

func GetMyBookings(c *fiber.Ctx) error {
	studentID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	bookings, err := services.ListStudentBookings(studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

func CancelBooking(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := services.CancelBooking(bookingID, userID)
	if err != nil {
		return bookingError(c, err)
	}

	if booking.Status == models.BookingPendingReview {
		return c.JSON(fiber.Map{"message": "Booking flagged for review.", "booking": booking})
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled and credits released."})
}

func GetBookingRequests(c *fiber.Ctx) error {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	bookings, err := services.ListTutorBookings(tutorID, models.BookingPending)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking requests"})
	}
	return c.JSON(bookings)
}

func RespondToBooking(store repository.AvailabilityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tutorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
		}
		bookingID, err := uuid.Parse(c.Params("bookingId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
		}

		var req RespondBookingRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		booking, err := services.RespondToBooking(c.UserContext(), store, bookingID, tutorID, *req.Accept)
		if err != nil {
			return bookingError(c, err)
		}
		if !*req.Accept {
			return c.JSON(fiber.Map{"message": "Booking request declined."})
		}
		return c.JSON(fiber.Map{"message": "Booking request accepted.", "booking": booking})
	}
}

func GetTutorBookings(c *fiber.Ctx) error {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	status := c.Query("status")
	if status != "" && !models.IsBookingStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown booking status"})
	}

	bookings, err := services.ListTutorBookings(tutorID, status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

func UpdateBookingStatus(c *fiber.Ctx) error {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.UpdateBookingStatus(bookingID, tutorID, req.Status)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(booking)
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,max=2000"`
}

func SubmitFeedback(c *fiber.Ctx) error {
	studentID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.SubmitFeedback(bookingID, studentID, req.Feedback)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(booking)
}
