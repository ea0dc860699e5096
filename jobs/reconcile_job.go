package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/models"
	"gorm.io/gorm"
)

type ReconcileLedger interface {
	GetCourse(ctx context.Context, courseID string) (*ledger.Course, error)
	UpdateCourseStatus(ctx context.Context, courseID string, status models.CourseStatus) (*ledger.TxResult, error)
}

// ReconcileJob retries the best-effort archive mirror: archived paid courses
// whose registry record still carries an older status get another status
// update. Outcomes are logged, never escalated.
type ReconcileJob struct {
	db    *gorm.DB
	chain ReconcileLedger
}

func NewReconcileJob(db *gorm.DB, chain ReconcileLedger) *ReconcileJob {
	return &ReconcileJob{db: db, chain: chain}
}

func (j *ReconcileJob) Run() {
	log.Println("Running job: ReconcileArchivedCourses...")

	var archived []models.Course
	err := j.db.Where("status = ? AND price_yd > 0", models.CourseStatusArchived).
		Find(&archived).Error
	if err != nil {
		log.Printf("Error loading archived courses: %v", err)
		return
	}
	if len(archived) == 0 {
		log.Println("No archived paid courses to reconcile.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	lagging := 0
	for _, course := range archived {
		record, err := j.chain.GetCourse(ctx, course.ID.String())
		if err != nil {
			if errors.Is(err, ledger.ErrCourseNotFound) {
				// never mirrored; archived courses are not registered late
				continue
			}
			log.Printf("⚠️ Failed to read registry record for course %s: %v", course.ID, err)
			continue
		}
		if record.Status == models.CourseStatusArchived {
			continue
		}

		lagging++
		if _, err := j.chain.UpdateCourseStatus(ctx, course.ID.String(), models.CourseStatusArchived); err != nil {
			log.Printf("⚠️ Archive reconcile for course %s failed: %v", course.ID, err)
			continue
		}
		log.Printf("✅ Reconciled archive status for course %s", course.ID)
	}

	if lagging == 0 {
		log.Println("All archived courses already mirrored.")
	}
}
