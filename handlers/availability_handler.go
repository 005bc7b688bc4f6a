package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/tutor_marketplace/availability"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validate = validator.New()

type TrueAvailabilityRequest struct {
	TutorID string `json:"tutor_id"`
	Date    string `json:"date"`
}

// GetTrueAvailability answers which HH:MM ranges of a tutor's day are still free to book.
func GetTrueAvailability(store repository.AvailabilityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req TrueAvailabilityRequest
		if err := c.BodyParser(&req); err != nil || req.TutorID == "" || req.Date == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tutor_id and date are required"})
		}
		return respondWithFreeSlots(c, store, req.TutorID, req.Date)
	}
}

func GetTutorAvailability(store repository.AvailabilityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tutorID, date := c.Params("tutorId"), c.Query("date")
		if tutorID == "" || date == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tutor_id and date are required"})
		}
		return respondWithFreeSlots(c, store, tutorID, date)
	}
}

func respondWithFreeSlots(c *fiber.Ctx, store repository.AvailabilityStore, tutorID, date string) error {
	dayStart, dayEnd, err := availability.DayRange(date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be formatted as YYYY-MM-DD"})
	}

	logger := utils.GetLogger().With(zap.String("tutor_id", tutorID), zap.String("date", date))

	windows, err := store.WindowsForDay(c.UserContext(), tutorID, dayStart, dayEnd)
	if err != nil {
		logger.Error("Failed to fetch tutor availability", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutor availability"})
	}

	booked, err := store.ActiveBookingsForDay(c.UserContext(), tutorID, dayStart, dayEnd)
	if err != nil {
		logger.Error("Failed to fetch bookings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(fiber.Map{"availability": availability.ComputeFreeSlots(windows, booked)})
}

type AvailabilityRequest struct {
	StartDatetimeUTC time.Time `json:"start_datetime_utc" validate:"required"`
	EndDatetimeUTC   time.Time `json:"end_datetime_utc" validate:"required"`
}

func (r AvailabilityRequest) check() string {
	if !r.StartDatetimeUTC.Before(r.EndDatetimeUTC) {
		return "start_datetime_utc must be before end_datetime_utc"
	}
	if !r.EndDatetimeUTC.After(time.Now()) {
		return "availability must end in the future"
	}
	return ""
}

func CreateAvailability(c *fiber.Ctx) error {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if msg := req.check(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	window := models.TutorAvailability{
		TutorID:          tutorID,
		StartDatetimeUTC: req.StartDatetimeUTC.UTC(),
		EndDatetimeUTC:   req.EndDatetimeUTC.UTC(),
	}
	if err := database.DB.Create(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create availability"})
	}
	return c.Status(fiber.StatusCreated).JSON(window)
}

// GetMyAvailability lists the caller's windows that have not ended yet.
func GetMyAvailability(c *fiber.Ctx) error {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	windows := []models.TutorAvailability{}
	if err := database.DB.
		Where("tutor_id = ? AND end_datetime_utc > ?", tutorID, time.Now().UTC()).
		Order("start_datetime_utc asc").
		Find(&windows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch availability"})
	}
	return c.JSON(windows)
}

func findOwnWindow(c *fiber.Ctx) (*models.TutorAvailability, error) {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}
	windowID, err := uuid.Parse(c.Params("availabilityId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid availability ID"})
	}

	var window models.TutorAvailability
	if err := database.DB.First(&window, "id = ? AND tutor_id = ?", windowID, tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability not found"})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch availability"})
	}
	return &window, nil
}

func UpdateAvailability(c *fiber.Ctx) error {
	window, err := findOwnWindow(c)
	if window == nil {
		return err
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if msg := req.check(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	window.StartDatetimeUTC = req.StartDatetimeUTC.UTC()
	window.EndDatetimeUTC = req.EndDatetimeUTC.UTC()
	if err := database.DB.Save(window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availability"})
	}
	return c.JSON(window)
}

func DeleteAvailability(c *fiber.Ctx) error {
	window, err := findOwnWindow(c)
	if window == nil {
		return err
	}

	if err := database.DB.Delete(window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete availability"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
