package services

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")
)

// CreateProfile stores a new profile together with its empty credit balance.
func CreateProfile(profile *models.Profile) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Where("id = ?", profile.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrProfileExists
		}

		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		_, err := CreateCredits(tx, profile.ID)
		return err
	})
}

func GetProfile(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := database.DB.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}
