package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, auth, admin fiber.Handler) {
	group := app.Group("/api/v1/admin", auth, admin)

	group.Post("/subjects", handlers.CreateSubject)
	group.Post("/bookings/:bookingId/add-link", handlers.AddMeetingLink)
}
