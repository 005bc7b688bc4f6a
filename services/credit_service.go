package services

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MinutesPerCredit = 30

var (
	ErrCreditsNotFound      = errors.New("credits not found")
	ErrInvalidCreditAmount  = errors.New("credit amount must be positive")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrInsufficientReserved = errors.New("insufficient reserved credits")
)

// CreditsForDuration prices a session: every started half hour costs one credit.
func CreditsForDuration(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes + MinutesPerCredit - 1) / MinutesPerCredit
}

func CreateCredits(tx *gorm.DB, userID uuid.UUID) (*models.Credit, error) {
	credit := models.Credit{UserID: userID}
	if err := tx.Create(&credit).Error; err != nil {
		return nil, fmt.Errorf("create credits: %w", err)
	}
	return &credit, nil
}

func GetCredits(tx *gorm.DB, userID uuid.UUID) (*models.Credit, error) {
	var credit models.Credit
	if err := tx.Where("user_id = ?", userID).First(&credit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditsNotFound
		}
		return nil, fmt.Errorf("get credits: %w", err)
	}
	return &credit, nil
}

func AddCredits(userID uuid.UUID, amount int) (*models.Credit, error) {
	if amount <= 0 {
		return nil, ErrInvalidCreditAmount
	}

	var credit *models.Credit
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Credit{}).
			Where("user_id = ?", userID).
			Update("available_balance", gorm.Expr("available_balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCreditsNotFound
		}

		var err error
		credit, err = GetCredits(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return credit, nil
}

// ReserveCredits moves amount from the available to the reserved balance. The balance
// check and the update are one statement, so concurrent reservations cannot overdraw.
func ReserveCredits(tx *gorm.DB, userID uuid.UUID, amount int) error {
	return moveCredits(tx, userID, amount,
		"available_balance >= ?",
		map[string]interface{}{
			"available_balance": gorm.Expr("available_balance - ?", amount),
			"reserved_balance":  gorm.Expr("reserved_balance + ?", amount),
		},
		ErrInsufficientCredits,
	)
}

// ReleaseCredits returns reserved credits to the available balance.
func ReleaseCredits(tx *gorm.DB, userID uuid.UUID, amount int) error {
	return moveCredits(tx, userID, amount,
		"reserved_balance >= ?",
		map[string]interface{}{
			"available_balance": gorm.Expr("available_balance + ?", amount),
			"reserved_balance":  gorm.Expr("reserved_balance - ?", amount),
		},
		ErrInsufficientReserved,
	)
}

// SettleCredits spends reserved credits once a session has taken place.
func SettleCredits(tx *gorm.DB, userID uuid.UUID, amount int) error {
	return moveCredits(tx, userID, amount,
		"reserved_balance >= ?",
		map[string]interface{}{
			"reserved_balance": gorm.Expr("reserved_balance - ?", amount),
		},
		ErrInsufficientReserved,
	)
}

func moveCredits(tx *gorm.DB, userID uuid.UUID, amount int, guard string, updates map[string]interface{}, shortfall error) error {
	if amount == 0 {
		return nil
	}
	if amount < 0 {
		return ErrInvalidCreditAmount
	}

	res := tx.Model(&models.Credit{}).
		Where("user_id = ?", userID).
		Where(guard, amount).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update credits: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if _, err := GetCredits(tx, userID); err != nil {
		return err
	}
	return shortfall
}
