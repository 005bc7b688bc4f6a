package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App, store repository.AvailabilityStore, auth fiber.Handler) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", auth)
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking(store))
	booking.Post("/:bookingId/cancel", handlers.CancelBooking)
	booking.Post("/:bookingId/feedback", handlers.SubmitFeedback)

	tutorBooking := api.Group("/tutor/bookings", auth, middleware.TutorRequired())
	tutorBooking.Get("", handlers.GetTutorBookings)
	tutorBooking.Get("/requests", handlers.GetBookingRequests)
	tutorBooking.Post("/:bookingId/respond", handlers.RespondToBooking(store))
	tutorBooking.Put("/:bookingId/status", handlers.UpdateBookingStatus)
}
