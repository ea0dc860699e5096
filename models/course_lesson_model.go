package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseLesson struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CourseID     uuid.UUID `gorm:"not null;index"`
	LessonNumber int       `gorm:"not null"`
	Title        string    `gorm:"size:255;not null"`
	Description  *string   `gorm:"type:text"`
	VideoURL     *string   `gorm:"size:512"`
	Duration     int       `gorm:"default:0"`
	IsFree       bool      `gorm:"default:false"`

	Course Course `gorm:"foreignkey:CourseID"`

	CreatedAt time.Time
}

func (l *CourseLesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
