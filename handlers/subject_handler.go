package handlers

import (
	"errors"
	"strings"

	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListSubjects(c *fiber.Ctx) error {
	subjects, err := services.ListSubjects(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}
	return c.JSON(subjects)
}

func GetSubject(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	subject, err := services.GetSubject(c.UserContext(), subjectID)
	if err != nil {
		if errors.Is(err, services.ErrSubjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subject"})
	}
	return c.JSON(subject)
}

type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func CreateSubject(c *fiber.Ctx) error {
	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	subject, err := services.CreateSubject(c.UserContext(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrSubjectExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subject already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}
