package database

import (
	"errors"
	"fmt"
	"strings"

	config "github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// GormConfig is shared by the postgres connection and the sqlite databases used in tests.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	}
}

// ConnectDB opens DATABASE_URL. A "file:" URL opens a local sqlite database, anything
// else is handed to the postgres driver.
func ConnectDB() {
	var err error
	dsn := config.AppConfig.DatabaseURL

	if strings.HasPrefix(dsn, "file:") {
		DB, err = OpenSQLite(dsn)
	} else {
		DB, err = gorm.Open(postgres.Open(dsn), GormConfig())
	}
	if err != nil {
		utils.GetLogger().Fatal("🔥 Failed to connect to database", zap.Error(err))
	}

	utils.GetLogger().Info("✅ Database connected successfully")
}

// OpenSQLite opens and migrates a sqlite database, e.g. "file::memory:" in tests.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite has a single writer, and every ":memory:" connection would be its own database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func Migrate() {
	if err := AutoMigrate(DB); err != nil {
		utils.GetLogger().Fatal("🔥 Failed to migrate database", zap.Error(err))
	}
	utils.GetLogger().Info("✅ Database migration successful")
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Credit{},
		&models.Subject{},
		&models.TutorSubject{},
		&models.TutorAvailability{},
		&models.Booking{},
	)
}

var defaultSubjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"English",
	"Computer Science",
}

// SeedSubjects inserts the default subject catalogue when the table is empty.
func SeedSubjects() {
	var count int64
	if err := DB.Model(&models.Subject{}).Count(&count).Error; err != nil {
		utils.GetLogger().Fatal("🔥 Failed to check for subjects", zap.Error(err))
		return
	}

	if count > 0 {
		utils.GetLogger().Debug("Subjects already seeded", zap.Int64("count", count))
		return
	}

	if err := seedSubjects(DB, defaultSubjects); err != nil {
		utils.GetLogger().Fatal("🔥 Failed to seed subjects", zap.Error(err))
		return
	}

	utils.GetLogger().Info("✅ Subjects seeded successfully", zap.Int("count", len(defaultSubjects)))
}

func seedSubjects(db *gorm.DB, names []string) error {
	if len(names) == 0 {
		return errors.New("no subjects to seed")
	}
	subjects := make([]models.Subject, 0, len(names))
	for _, name := range names {
		subjects = append(subjects, models.Subject{Name: name})
	}
	if err := db.Create(&subjects).Error; err != nil {
		return fmt.Errorf("create subjects: %w", err)
	}
	return nil
}
