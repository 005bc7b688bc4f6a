package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App, auth fiber.Handler) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", auth)
	profile.Get("/me", handlers.GetMyProfile)
	profile.Post("/me", handlers.CreateMyProfile)
	profile.Put("/me", handlers.UpdateMyProfile)

	credits := api.Group("/credits", auth)
	credits.Get("/me", handlers.GetMyCredits)
	credits.Post("/me", handlers.AddMyCredits)
}
