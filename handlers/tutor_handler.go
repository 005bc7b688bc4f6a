package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FilteredTutorsRequest struct {
	SubjectID string `json:"subject_id"`
}

// GetFilteredTutors lists tutors of a subject who still have availability ahead of them.
func GetFilteredTutors(store repository.AvailabilityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req FilteredTutorsRequest
		if err := c.BodyParser(&req); err != nil || req.SubjectID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "subject_id is required"})
		}

		tutors, err := repository.FilterTutorsWithAvailability(c.UserContext(), store, req.SubjectID, time.Now().UTC())
		if err != nil {
			utils.GetLogger().Error("Failed to fetch tutors", zap.String("subject_id", req.SubjectID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutors"})
		}
		return c.JSON(fiber.Map{"tutors": tutors})
	}
}

func GetTutorSubjects(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor ID"})
	}

	subjects, err := services.ListTutorSubjects(c.UserContext(), tutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}
	return c.JSON(subjects)
}

type TutorSubjectRequest struct {
	SubjectID string `json:"subject_id" validate:"required,uuid"`
}

func AddMySubject(c *fiber.Ctx) error {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req TutorSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	subjectID, _ := uuid.Parse(req.SubjectID)

	tutorSubject, err := services.AddTutorSubject(c.UserContext(), tutorID, subjectID)
	switch {
	case errors.Is(err, services.ErrSubjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyTeaching):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add subject"})
	}
	return c.Status(fiber.StatusCreated).JSON(tutorSubject)
}

func RemoveMySubject(c *fiber.Ctx) error {
	tutorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	if err := services.RemoveTutorSubject(c.UserContext(), tutorID, subjectID); err != nil {
		if errors.Is(err, services.ErrSubjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "You do not teach this subject"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove subject"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
