package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LearningRecord tracks watch progress per student and course. LessonID is
// nil for single-video courses; multi-lesson courses carry one record per
// lesson.
type LearningRecord struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key"`
	CourseID           uuid.UUID  `gorm:"not null;index:idx_learning_records_course_user"`
	UserWalletAddress  string     `gorm:"size:42;not null;index:idx_learning_records_course_user"`
	LessonID           *uuid.UUID `gorm:"index"`
	WatchTime          int        `gorm:"default:0"`
	ProgressPercentage int        `gorm:"default:0"`
	Completed          bool       `gorm:"default:false"`
	LastWatchedAt      time.Time

	Course Course `gorm:"foreignkey:CourseID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (lr *LearningRecord) BeforeCreate(tx *gorm.DB) error {
	if lr.ID == uuid.Nil {
		lr.ID = uuid.New()
	}
	return nil
}
