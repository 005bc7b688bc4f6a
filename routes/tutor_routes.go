package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func TutorRoutes(app *fiber.App, auth fiber.Handler) {
	tutor := app.Group("/api/v1/tutor", auth, middleware.TutorRequired())

	availability := tutor.Group("/availability")
	availability.Post("", handlers.CreateAvailability)
	availability.Get("/me", handlers.GetMyAvailability)
	availability.Put("/:availabilityId", handlers.UpdateAvailability)
	availability.Delete("/:availabilityId", handlers.DeleteAvailability)

	subjects := tutor.Group("/subjects")
	subjects.Post("", handlers.AddMySubject)
	subjects.Delete("/:subjectId", handlers.RemoveMySubject)
}
