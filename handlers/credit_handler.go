package handlers

import (
	"errors"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
)

type AddCreditsRequest struct {
	Amount int `json:"amount" validate:"required,min=1"`
}

func GetMyCredits(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	credit, err := services.GetCredits(database.DB, userID)
	if err != nil {
		if errors.Is(err, services.ErrCreditsNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Credits not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch credits"})
	}
	return c.JSON(credit)
}

func AddMyCredits(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req AddCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	credit, err := services.AddCredits(userID, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrCreditsNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Credits not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add credits"})
	}
	return c.JSON(credit)
}
