package handlers

import (
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AddLinkRequest struct {
	MeetingLink string `json:"meeting_link" validate:"required,url"`
}

func AddMeetingLink(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var req AddLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.SetMeetingLink(bookingID, req.MeetingLink)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Meeting link added successfully", "booking": booking})
}
