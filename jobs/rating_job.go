package jobs

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/models"
	"github.com/anjiri1684/web3_university/services"
	"gorm.io/gorm"
)

// Courses above this bar earn their teacher an on-chain badge.
const (
	badgeMinRating   = 4.8
	badgeMinStudents = 10
)

type BadgeLedger interface {
	AwardTeacherBadge(ctx context.Context, teacher, courseID string, ratingScore uint8, metadataURI string) (*ledger.TxResult, error)
}

// RatingJob sweeps courses with recent review activity, recomputes their
// stored rating and awards teacher badges where earned.
type RatingJob struct {
	db      *gorm.DB
	reviews *services.ReviewService
	chain   BadgeLedger
}

func NewRatingJob(db *gorm.DB, reviews *services.ReviewService, chain BadgeLedger) *RatingJob {
	return &RatingJob{db: db, reviews: reviews, chain: chain}
}

func (j *RatingJob) Run() {
	log.Println("Running job: RecomputeStaleRatings...")

	since := time.Now().Add(-15 * time.Minute)
	var courseIDs []string
	err := j.db.Model(&models.Review{}).
		Where("updated_at > ?", since).
		Distinct("course_id").
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		log.Printf("Error finding courses with recent reviews: %v", err)
		return
	}
	if len(courseIDs) == 0 {
		log.Println("No courses with recent review activity.")
		return
	}

	var courses []models.Course
	if err := j.db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		log.Printf("Error loading courses for rating sweep: %v", err)
		return
	}

	for _, course := range courses {
		if err := j.reviews.RecomputeCourseRating(course.ID); err != nil {
			log.Printf("🔥 Failed to recompute rating for course %s: %v", course.ID, err)
			continue
		}
		j.maybeAwardBadge(course)
	}
	log.Printf("Recomputed ratings for %d course(s).", len(courses))
}

func (j *RatingJob) maybeAwardBadge(course models.Course) {
	var refreshed models.Course
	if err := j.db.First(&refreshed, "id = ?", course.ID).Error; err != nil {
		return
	}
	if refreshed.Rating < badgeMinRating || refreshed.TotalStudents < badgeMinStudents || refreshed.PriceYD <= 0 {
		return
	}

	metadataURI := ""
	if refreshed.ThumbnailURL != nil {
		metadataURI = *refreshed.ThumbnailURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	score := uint8(math.Round(refreshed.Rating))
	_, err := j.chain.AwardTeacherBadge(ctx, refreshed.TeacherWalletAddress, refreshed.ID.String(), score, metadataURI)
	if err != nil {
		if errors.Is(err, ledger.ErrBadgeExists) {
			return
		}
		log.Printf("⚠️ Failed to award teacher badge for course %s: %v", refreshed.ID, err)
		return
	}
	log.Printf("✅ Awarded teacher badge for course %s (rating %.2f)", refreshed.ID, refreshed.Rating)
}
