package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	}
	return false
}

type Course struct {
	ID                   uuid.UUID    `gorm:"type:uuid;primary_key"`
	Title                string       `gorm:"size:255;not null"`
	Description          string       `gorm:"type:text"`
	TeacherWalletAddress string       `gorm:"size:42;not null;index"`
	PriceYD              float64      `gorm:"type:numeric(20,8);not null;default:0"`
	Category             string       `gorm:"size:100;index"`
	ThumbnailURL         *string      `gorm:"size:512"`
	VideoURL             *string      `gorm:"size:512"`
	TotalLessons         int          `gorm:"default:0"`
	TotalDuration        int          `gorm:"default:0"`
	Rating               float64      `gorm:"type:numeric(4,2);default:0"`
	TotalStudents        int          `gorm:"default:0"`
	Status               CourseStatus `gorm:"size:20;not null;default:'draft';index"`

	Teacher User `gorm:"foreignkey:TeacherWalletAddress;references:WalletAddress"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
