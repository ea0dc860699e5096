package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserCourse struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	CourseID          uuid.UUID `gorm:"not null;index;uniqueIndex:idx_user_courses_course_user"`
	UserWalletAddress string    `gorm:"size:42;not null;uniqueIndex:idx_user_courses_course_user"`
	TransactionHash   *string   `gorm:"size:66"`

	Course Course `gorm:"foreignkey:CourseID"`

	CreatedAt time.Time
}

func (uc *UserCourse) BeforeCreate(tx *gorm.DB) error {
	if uc.ID == uuid.Nil {
		uc.ID = uuid.New()
	}
	return nil
}
