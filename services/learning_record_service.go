package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/web3_university/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningRecordService struct {
	db      *gorm.DB
	courses *CourseStore
}

func NewLearningRecordService(db *gorm.DB, courses *CourseStore) *LearningRecordService {
	return &LearningRecordService{db: db, courses: courses}
}

type RecordProgressInput struct {
	CourseID           uuid.UUID
	UserWalletAddress  string
	LessonID           *uuid.UUID
	WatchTime          *int
	ProgressPercentage *int
	Completed          *bool
}

type LearningRecordFilter struct {
	CourseID          *uuid.UUID
	UserWalletAddress string
}

type UpdateLearningRecordInput struct {
	WatchTime          *int
	ProgressPercentage *int
	Completed          *bool
}

// RecordProgress upserts the watch-progress row for (wallet, course, lesson).
// A record that already exists is updated in place; absent fields keep their
// stored values. Every call refreshes last_watched_at.
func (s *LearningRecordService) RecordProgress(input RecordProgressInput) (*models.LearningRecord, error) {
	if err := validateProgress(input.WatchTime, input.ProgressPercentage); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(input.CourseID); err != nil {
		return nil, err
	}

	query := s.db.Where("course_id = ? AND user_wallet_address = ?", input.CourseID, input.UserWalletAddress)
	if input.LessonID == nil {
		query = query.Where("lesson_id IS NULL")
	} else {
		query = query.Where("lesson_id = ?", *input.LessonID)
	}

	var existing models.LearningRecord
	err := query.First(&existing).Error
	if err == nil {
		return s.applyUpdate(existing.ID, UpdateLearningRecordInput{
			WatchTime:          input.WatchTime,
			ProgressPercentage: input.ProgressPercentage,
			Completed:          input.Completed,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing learning record: %w", err)
	}

	record := &models.LearningRecord{
		CourseID:          input.CourseID,
		UserWalletAddress: input.UserWalletAddress,
		LessonID:          input.LessonID,
		LastWatchedAt:     time.Now(),
	}
	if input.WatchTime != nil {
		record.WatchTime = *input.WatchTime
	}
	if input.ProgressPercentage != nil {
		record.ProgressPercentage = *input.ProgressPercentage
	}
	if input.Completed != nil {
		record.Completed = *input.Completed
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create learning record: %w", err)
	}
	return record, nil
}

func (s *LearningRecordService) FindAll(filter LearningRecordFilter) ([]models.LearningRecord, error) {
	query := s.db.Model(&models.LearningRecord{})
	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.UserWalletAddress != "" {
		query = query.Where("user_wallet_address = ?", filter.UserWalletAddress)
	}

	var records []models.LearningRecord
	if err := query.Order("last_watched_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list learning records: %w", err)
	}
	return records, nil
}

func (s *LearningRecordService) FindOne(id uuid.UUID) (*models.LearningRecord, error) {
	var record models.LearningRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLearningRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch learning record %s: %w", id, err)
	}
	return &record, nil
}

func (s *LearningRecordService) Update(id uuid.UUID, caller string, input UpdateLearningRecordInput) (*models.LearningRecord, error) {
	if err := validateProgress(input.WatchTime, input.ProgressPercentage); err != nil {
		return nil, err
	}

	record, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if record.UserWalletAddress != caller {
		return nil, fmt.Errorf("%w: learning record %s", ErrForbidden, id)
	}
	return s.applyUpdate(id, input)
}

func (s *LearningRecordService) applyUpdate(id uuid.UUID, input UpdateLearningRecordInput) (*models.LearningRecord, error) {
	changes := map[string]interface{}{"last_watched_at": time.Now()}
	if input.WatchTime != nil {
		changes["watch_time"] = *input.WatchTime
	}
	if input.ProgressPercentage != nil {
		changes["progress_percentage"] = *input.ProgressPercentage
	}
	if input.Completed != nil {
		changes["completed"] = *input.Completed
	}

	if err := s.db.Model(&models.LearningRecord{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to update learning record %s: %w", id, err)
	}
	return s.FindOne(id)
}

func validateProgress(watchTime, progress *int) error {
	if watchTime != nil && *watchTime < 0 {
		return fmt.Errorf("%w: watch time must not be negative", ErrValidation)
	}
	if progress != nil && (*progress < 0 || *progress > 100) {
		return fmt.Errorf("%w: progress percentage must be between 0 and 100", ErrValidation)
	}
	return nil
}
