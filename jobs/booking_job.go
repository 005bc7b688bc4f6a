package jobs

import (
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompleteElapsedBookings marks every upcoming booking that has ended as completed and
// spends the student's reserved credits. It returns how many bookings were completed.
func CompleteElapsedBookings(now time.Time) int {
	logger := utils.GetLogger()
	logger.Debug("Running job: CompleteElapsedBookings")

	var elapsed []models.Booking
	err := database.DB.
		Where("status = ? AND end_datetime_utc <= ?", models.BookingUpcoming, now.UTC()).
		Find(&elapsed).Error
	if err != nil {
		logger.Error("Error checking for elapsed bookings", zap.Error(err))
		return 0
	}

	if len(elapsed) == 0 {
		return 0
	}

	completed := 0
	for i := range elapsed {
		booking := &elapsed[i]
		changed := false
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, models.BookingUpcoming).
				Update("status", models.BookingCompleted)
			if res.Error != nil || res.RowsAffected == 0 {
				return res.Error
			}
			changed = true
			return services.SettleCredits(tx, booking.StudentID, booking.CreditsRequired)
		})
		if err != nil {
			logger.Error("Failed to complete booking", zap.String("booking_id", booking.ID.String()), zap.Error(err))
			continue
		}
		if changed {
			completed++
		}
	}

	logger.Info("Completed elapsed bookings", zap.Int("count", completed))
	return completed
}

// RunCompleteElapsedBookings is the cron entry point.
func RunCompleteElapsedBookings() {
	CompleteElapsedBookings(time.Now())
}
