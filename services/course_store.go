package services

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/web3_university/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseFilter narrows List results; zero-value fields are ignored and an
// empty filter returns every course.
type CourseFilter struct {
	TeacherWalletAddress string
	Status               models.CourseStatus
	Category             string
}

// CourseStore is typed CRUD over the courses table. It knows nothing about
// the chain; every operation touches a single row.
type CourseStore struct {
	db *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db}
}

func (s *CourseStore) Insert(course *models.Course) error {
	if err := s.db.Create(course).Error; err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	return nil
}

func (s *CourseStore) GetByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch course %s: %w", id, err)
	}
	return &course, nil
}

func (s *CourseStore) List(filter CourseFilter) ([]models.Course, error) {
	query := s.db.Model(&models.Course{})
	if filter.TeacherWalletAddress != "" {
		query = query.Where("teacher_wallet_address = ?", filter.TeacherWalletAddress)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *CourseStore) Update(id uuid.UUID, changes map[string]interface{}) (*models.Course, error) {
	res := s.db.Model(&models.Course{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update course %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}
	return s.GetByID(id)
}

func (s *CourseStore) Delete(id uuid.UUID) error {
	if err := s.db.Delete(&models.Course{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}
	return nil
}

// UpdateStatusFrom transitions status only when the stored value still equals
// from. Two racing updates on the same course resolve here: the loser sees
// ErrStatusConflict instead of silently overwriting.
func (s *CourseStore) UpdateStatusFrom(id uuid.UUID, from, to models.CourseStatus) error {
	res := s.db.Model(&models.Course{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of course %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: course %s is no longer %s", ErrStatusConflict, id, from)
	}
	return nil
}

func (s *CourseStore) ListLessons(courseID uuid.UUID) ([]models.CourseLesson, error) {
	var lessons []models.CourseLesson
	err := s.db.Where("course_id = ?", courseID).
		Order("lesson_number ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons for course %s: %w", courseID, err)
	}
	return lessons, nil
}
