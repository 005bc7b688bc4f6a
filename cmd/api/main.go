package main

import (
	"time"

	config "github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/jobs"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/anjiri1684/tutor_marketplace/repository"
	"github.com/anjiri1684/tutor_marketplace/routes"
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func newAvailabilityStore(settings config.Settings, log *zap.Logger) repository.AvailabilityStore {
	if settings.StoreDriver != "supabase" {
		return repository.NewGormStore(database.DB)
	}

	key := settings.SupabaseServiceKey
	if key == "" {
		key = settings.SupabaseAnonKey
	}
	store, err := repository.NewSupabaseStore(settings.SupabaseURL, key, settings.SupabaseSchema, log)
	if err != nil {
		log.Fatal("🔥 Failed to configure supabase store", zap.Error(err))
	}
	return store
}

func main() {
	settings := config.LoadConfig()
	utils.InitializeLogger()
	log := utils.GetLogger()
	defer log.Sync()

	database.ConnectDB()
	database.Migrate()
	database.SeedSubjects()
	services.InitSubjectCache(settings.RedisAddr, settings.RedisPassword, settings.RedisDB, settings.SubjectCacheTTL)

	store := newAvailabilityStore(settings, log)
	log.Info("Availability store ready", zap.String("driver", settings.StoreDriver))

	c := cron.New()
	if _, err := c.AddFunc(settings.BookingJobSchedule, jobs.RunCompleteElapsedBookings); err != nil {
		log.Fatal("🔥 Invalid booking job schedule", zap.String("schedule", settings.BookingJobSchedule), zap.Error(err))
	}
	go c.Start()
	log.Info("✅ Cron job for elapsed bookings scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Tutor Marketplace",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Error("Request failed",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.Int("code", code))
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, apikey, x-client-info",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Tutor Marketplace API",
		})
	})

	routes.Register(app, routes.Options{
		Store:      store,
		RatePerMin: settings.RateLimitPerMin,
		Auth:       middleware.Protected(),
		Admin:      middleware.AdminRequired(),
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Info("✅ Server is running", zap.String("port", settings.AppPort))
	if err := app.Listen(":" + settings.AppPort); err != nil {
		log.Fatal("🔥 Server failed to start", zap.Error(err))
	}
}
