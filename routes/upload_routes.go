package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App, auth fiber.Handler) {
	upload := app.Group("/api/v1/uploads", auth)
	upload.Get("/signature", handlers.GenerateUploadSignature)
}
