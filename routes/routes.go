package routes

import (
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/gofiber/fiber/v2"
)

// Options carries what the route groups need beyond the app itself.
type Options struct {
	Store      repository.AvailabilityStore
	RatePerMin int
	Auth       fiber.Handler
	Admin      fiber.Handler
}

func Register(app *fiber.App, opts Options) {
	PublicRoutes(app, opts.Store, opts.RatePerMin)
	ProfileRoutes(app, opts.Auth)
	TutorRoutes(app, opts.Auth)
	BookingRoutes(app, opts.Store, opts.Auth)
	AdminRoutes(app, opts.Auth, opts.Admin)
	UploadRoutes(app, opts.Auth)
}
