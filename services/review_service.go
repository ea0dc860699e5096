package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/anjiri1684/web3_university/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService struct {
	db      *gorm.DB
	courses *CourseStore
}

func NewReviewService(db *gorm.DB, courses *CourseStore) *ReviewService {
	return &ReviewService{db: db, courses: courses}
}

type CreateReviewInput struct {
	CourseID             uuid.UUID
	StudentWalletAddress string
	Rating               int
	Comment              *string
}

type ReviewFilter struct {
	CourseID             *uuid.UUID
	StudentWalletAddress string
	TeacherWalletAddress string
}

func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.courses.GetByID(input.CourseID); err != nil {
		return nil, err
	}

	purchased, err := s.hasPurchased(input.StudentWalletAddress, input.CourseID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, fmt.Errorf("%w: course %s", ErrPurchaseRequired, input.CourseID)
	}

	var existing models.Review
	err = s.db.Where("course_id = ? AND user_wallet_address = ?", input.CourseID, input.StudentWalletAddress).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: course %s", ErrAlreadyReviewed, input.CourseID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing review: %w", err)
	}

	review := &models.Review{
		CourseID:          input.CourseID,
		UserWalletAddress: input.StudentWalletAddress,
		Rating:            input.Rating,
		ReviewText:        input.Comment,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.RecomputeCourseRating(input.CourseID); err != nil {
		log.Printf("🔥 Failed to recompute rating for course %s: %v", input.CourseID, err)
	}
	return review, nil
}

func (s *ReviewService) FindAll(filter ReviewFilter) ([]models.Review, error) {
	query := s.db.Model(&models.Review{})
	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.StudentWalletAddress != "" {
		query = query.Where("user_wallet_address = ?", filter.StudentWalletAddress)
	}
	if filter.TeacherWalletAddress != "" {
		query = query.Where("course_id IN (?)",
			s.db.Model(&models.Course{}).Select("id").Where("teacher_wallet_address = ?", filter.TeacherWalletAddress))
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) FindOne(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrReviewNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return &review, nil
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

func (s *ReviewService) Update(id uuid.UUID, caller string, input UpdateReviewInput) (*models.Review, error) {
	review, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if review.UserWalletAddress != caller {
		return nil, fmt.Errorf("%w: review %s", ErrForbidden, id)
	}

	changes := map[string]interface{}{}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
		}
		changes["rating"] = *input.Rating
	}
	if input.Comment != nil {
		changes["review_text"] = *input.Comment
	}
	if len(changes) == 0 {
		return review, nil
	}

	if err := s.db.Model(&models.Review{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", id, err)
	}

	if err := s.RecomputeCourseRating(review.CourseID); err != nil {
		log.Printf("🔥 Failed to recompute rating for course %s: %v", review.CourseID, err)
	}
	return s.FindOne(id)
}

func (s *ReviewService) CountByCourse(courseID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Review{}).Where("course_id = ?", courseID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews for course %s: %w", courseID, err)
	}
	return count, nil
}

// RecomputeCourseRating recalculates the arithmetic mean of all ratings for
// the course, rounded to two decimals, and persists it. A course with no
// reviews carries rating 0. Idempotent; a single store write.
func (s *ReviewService) RecomputeCourseRating(courseID uuid.UUID) error {
	var ratings []int
	err := s.db.Model(&models.Review{}).Where("course_id = ?", courseID).Pluck("rating", &ratings).Error
	if err != nil {
		return fmt.Errorf("failed to load ratings for course %s: %w", courseID, err)
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		average = math.Round(float64(sum)/float64(len(ratings))*100) / 100
	}

	_, err = s.courses.Update(courseID, map[string]interface{}{"rating": average})
	return err
}

func (s *ReviewService) hasPurchased(wallet string, courseID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.UserCourse{}).
		Where("course_id = ? AND user_wallet_address = ?", courseID, wallet).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return count > 0, nil
}
