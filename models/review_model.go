package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	CourseID          uuid.UUID `gorm:"not null;index;uniqueIndex:idx_reviews_course_user"`
	UserWalletAddress string    `gorm:"size:42;not null;uniqueIndex:idx_reviews_course_user"`
	Rating            int       `gorm:"not null"`
	ReviewText        *string   `gorm:"type:text"`

	Course Course `gorm:"foreignkey:CourseID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
