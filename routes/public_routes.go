package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App, store repository.AvailabilityStore, ratePerMin int) {
	limited := middleware.RateLimit(ratePerMin)

	functions := app.Group("/functions/v1", limited)
	functions.Post("/get-true-availability", handlers.GetTrueAvailability(store))
	functions.Post("/get-filtered-tutors", handlers.GetFilteredTutors(store))

	api := app.Group("/api/v1")
	api.Get("/subjects", limited, handlers.ListSubjects)
	api.Get("/subjects/:subjectId", limited, handlers.GetSubject)
	api.Get("/tutors/:tutorId/availability", limited, handlers.GetTutorAvailability(store))
	api.Get("/tutors/:tutorId/subjects", limited, handlers.GetTutorSubjects)
}
