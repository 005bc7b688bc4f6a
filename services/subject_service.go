package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const subjectsCacheKey = "subjects:all"

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrSubjectExists   = errors.New("subject already exists")
	ErrAlreadyTeaching = errors.New("tutor already teaches this subject")
)

var (
	subjectCache    *redis.Client
	subjectCacheTTL = 10 * time.Minute
)

// InitSubjectCache connects the subject list cache. An empty addr leaves caching off.
func InitSubjectCache(addr, password string, db int, ttl time.Duration) {
	if addr == "" {
		utils.GetLogger().Info("Subject cache disabled, REDIS_ADDR not set")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.GetLogger().Warn("⚠️ Redis unreachable, subject cache disabled", zap.Error(err))
		client.Close()
		return
	}

	subjectCache = client
	if ttl > 0 {
		subjectCacheTTL = ttl
	}
	utils.GetLogger().Info("✅ Subject cache connected", zap.String("addr", addr))
}

// ListSubjects returns all subjects by name, served from redis when it is configured.
func ListSubjects(ctx context.Context) ([]models.Subject, error) {
	if subjectCache != nil {
		cached, err := subjectCache.Get(ctx, subjectsCacheKey).Bytes()
		if err == nil {
			var subjects []models.Subject
			if err := json.Unmarshal(cached, &subjects); err == nil {
				return subjects, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("Subject cache read failed", zap.Error(err))
		}
	}

	subjects := []models.Subject{}
	if err := database.DB.WithContext(ctx).Order("name asc").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	if subjectCache != nil {
		if payload, err := json.Marshal(subjects); err == nil {
			if err := subjectCache.Set(ctx, subjectsCacheKey, payload, subjectCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("Subject cache write failed", zap.Error(err))
			}
		}
	}
	return subjects, nil
}

func GetSubject(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	if err := database.DB.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("get subject: %w", err)
	}
	return &subject, nil
}

func CreateSubject(ctx context.Context, name string) (*models.Subject, error) {
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.Subject{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check subject: %w", err)
	}
	if count > 0 {
		return nil, ErrSubjectExists
	}

	subject := models.Subject{Name: name}
	if err := database.DB.WithContext(ctx).Create(&subject).Error; err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	invalidateSubjects(ctx)
	return &subject, nil
}

func invalidateSubjects(ctx context.Context) {
	if subjectCache == nil {
		return
	}
	if err := subjectCache.Del(ctx, subjectsCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Subject cache invalidation failed", zap.Error(err))
	}
}

func ListTutorSubjects(ctx context.Context, tutorID uuid.UUID) ([]models.TutorSubject, error) {
	tutorSubjects := []models.TutorSubject{}
	err := database.DB.WithContext(ctx).
		Preload("Subject").
		Where("tutor_id = ?", tutorID).
		Order("created_at asc").
		Find(&tutorSubjects).Error
	if err != nil {
		return nil, fmt.Errorf("list tutor subjects: %w", err)
	}
	return tutorSubjects, nil
}

func AddTutorSubject(ctx context.Context, tutorID, subjectID uuid.UUID) (*models.TutorSubject, error) {
	if _, err := GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}

	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.TutorSubject{}).
		Where("tutor_id = ? AND subject_id = ?", tutorID, subjectID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check tutor subject: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadyTeaching
	}

	tutorSubject := models.TutorSubject{TutorID: tutorID, SubjectID: subjectID}
	if err := database.DB.WithContext(ctx).Create(&tutorSubject).Error; err != nil {
		return nil, fmt.Errorf("add tutor subject: %w", err)
	}
	return &tutorSubject, nil
}

func RemoveTutorSubject(ctx context.Context, tutorID, subjectID uuid.UUID) error {
	res := database.DB.WithContext(ctx).
		Where("tutor_id = ? AND subject_id = ?", tutorID, subjectID).
		Delete(&models.TutorSubject{})
	if res.Error != nil {
		return fmt.Errorf("remove tutor subject: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}
