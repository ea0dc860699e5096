package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/models"
	"github.com/google/uuid"
)

// CourseLedger is the slice of the ledger gateway the coordinator drives.
type CourseLedger interface {
	CourseExists(ctx context.Context, courseID string) (bool, error)
	CreateCourse(ctx context.Context, courseID, teacher string, priceYD float64) (*ledger.TxResult, error)
	UpdateCourseStatus(ctx context.Context, courseID string, status models.CourseStatus) (*ledger.TxResult, error)
	CreateCourseWithStatus(ctx context.Context, courseID, teacher string, priceYD float64, publish bool) (*ledger.TxResult, error)
}

// CourseService coordinates every course write across the database and the
// chain. The database row is written first and rolled back when the matching
// chain call fails, so a caller never observes a stored status the registry
// did not accept. Free courses (price 0) never touch the chain.
type CourseService struct {
	store *CourseStore
	chain CourseLedger
}

func NewCourseService(store *CourseStore, chain CourseLedger) *CourseService {
	return &CourseService{store: store, chain: chain}
}

type CreateCourseInput struct {
	Title                string
	Description          string
	TeacherWalletAddress string
	PriceYD              float64
	Category             string
	ThumbnailURL         *string
	VideoURL             *string
	Status               models.CourseStatus
}

type UpdateCourseInput struct {
	Title        *string
	Description  *string
	Category     *string
	PriceYD      *float64
	ThumbnailURL *string
	VideoURL     *string
	Status       *models.CourseStatus
}

// Create inserts the course and mirrors paid courses to the registry.
// Publishing at creation time is best-effort: when the registry accepts the
// course but rejects the publish transition, the caller gets the draft back
// with no error.
func (s *CourseService) Create(ctx context.Context, input CreateCourseInput) (*models.Course, error) {
	if input.PriceYD < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	desired := input.Status
	if desired == "" {
		desired = models.CourseStatusDraft
	}
	if !desired.Valid() {
		return nil, fmt.Errorf("%w: unknown course status %q", ErrValidation, desired)
	}

	// Always insert as a draft: a crash between the store and chain steps
	// must never leave an unmirrored published row.
	course := &models.Course{
		Title:                input.Title,
		Description:          input.Description,
		TeacherWalletAddress: input.TeacherWalletAddress,
		PriceYD:              input.PriceYD,
		Category:             input.Category,
		ThumbnailURL:         input.ThumbnailURL,
		VideoURL:             input.VideoURL,
		Status:               models.CourseStatusDraft,
	}
	if err := s.store.Insert(course); err != nil {
		return nil, err
	}

	if input.PriceYD > 0 {
		publish := desired == models.CourseStatusPublished
		_, err := s.chain.CreateCourseWithStatus(ctx, course.ID.String(), course.TeacherWalletAddress, course.PriceYD, publish)
		if err != nil {
			var pubErr *ledger.PublishFailedError
			if errors.As(err, &pubErr) {
				log.Printf("⚠️ Course %s registered on chain but publish failed, keeping draft: %v", course.ID, pubErr.Err)
				return course, nil
			}
			// Compensating delete: the row never existed from the
			// caller's point of view.
			if delErr := s.store.Delete(course.ID); delErr != nil {
				log.Printf("🔥 Failed to roll back course %s after chain failure: %v", course.ID, delErr)
			}
			return nil, fmt.Errorf("on-chain registration failed, course creation rolled back: %w", err)
		}
	}

	if desired == models.CourseStatusPublished {
		return s.store.Update(course.ID, map[string]interface{}{"status": models.CourseStatusPublished})
	}
	return course, nil
}

// Update applies the field delta to the store first, then mirrors a status
// change of a paid course to the registry. A registry record that was never
// created (for example when the price was set after creation) is registered
// on the fly; any other chain failure rolls the stored status back before the
// error is raised.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, caller string, input UpdateCourseInput) (*models.Course, error) {
	existing, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(existing.TeacherWalletAddress, caller) {
		return nil, fmt.Errorf("%w: course %s", ErrForbidden, id)
	}

	changes := map[string]interface{}{}
	if input.Title != nil {
		changes["title"] = *input.Title
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Category != nil {
		changes["category"] = *input.Category
	}
	if input.ThumbnailURL != nil {
		changes["thumbnail_url"] = *input.ThumbnailURL
	}
	if input.VideoURL != nil {
		changes["video_url"] = *input.VideoURL
	}
	if input.PriceYD != nil {
		if *input.PriceYD < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		changes["price_yd"] = *input.PriceYD
	}

	statusChanged := false
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown course status %q", ErrValidation, *input.Status)
		}
		statusChanged = *input.Status != existing.Status
		changes["status"] = *input.Status
	}

	if len(changes) == 0 {
		return existing, nil
	}

	prevStatus := existing.Status
	updated, err := s.store.Update(id, changes)
	if err != nil {
		return nil, err
	}

	if statusChanged && updated.PriceYD > 0 {
		if _, err := s.chain.UpdateCourseStatus(ctx, id.String(), updated.Status); err != nil {
			if errors.Is(err, ledger.ErrCourseNotFound) {
				publish := updated.Status == models.CourseStatusPublished
				_, createErr := s.chain.CreateCourseWithStatus(ctx, id.String(), updated.TeacherWalletAddress, updated.PriceYD, publish)
				if createErr != nil {
					return s.rollbackStatus(id, updated.Status, prevStatus,
						fmt.Errorf("on-chain registration during %s -> %s transition failed: %w", prevStatus, updated.Status, createErr))
				}
				return updated, nil
			}
			return s.rollbackStatus(id, updated.Status, prevStatus,
				fmt.Errorf("on-chain status update %s -> %s failed: %w", prevStatus, updated.Status, err))
		}
	}

	return updated, nil
}

// Archive is the platform's "delete": the row is kept, the status turns
// terminal. Mirroring the archival to the registry is best-effort; a failure
// is logged and never fails the call.
func (s *CourseService) Archive(ctx context.Context, id uuid.UUID, caller string) (*models.Course, error) {
	existing, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(existing.TeacherWalletAddress, caller) {
		return nil, fmt.Errorf("%w: course %s", ErrForbidden, id)
	}
	if existing.Status == models.CourseStatusArchived {
		return existing, nil
	}

	updated, err := s.store.Update(id, map[string]interface{}{"status": models.CourseStatusArchived})
	if err != nil {
		return nil, err
	}

	if updated.PriceYD > 0 {
		if _, err := s.chain.UpdateCourseStatus(ctx, id.String(), models.CourseStatusArchived); err != nil {
			log.Printf("⚠️ Best-effort archive mirror for course %s failed: %v", id, err)
		}
	}
	return updated, nil
}

func (s *CourseService) rollbackStatus(id uuid.UUID, from, to models.CourseStatus, cause error) (*models.Course, error) {
	if err := s.store.UpdateStatusFrom(id, from, to); err != nil {
		log.Printf("🔥 Failed to roll back status of course %s to %s: %v", id, to, err)
	}
	return nil, cause
}

func (s *CourseService) FindAll(filter CourseFilter) ([]models.Course, error) {
	return s.store.List(filter)
}

func (s *CourseService) FindOne(id uuid.UUID) (*models.Course, error) {
	return s.store.GetByID(id)
}

func (s *CourseService) FindLessons(courseID uuid.UUID) ([]models.CourseLesson, error) {
	if _, err := s.store.GetByID(courseID); err != nil {
		return nil, err
	}
	return s.store.ListLessons(courseID)
}
