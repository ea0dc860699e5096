package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key"`
	CourseID             uuid.UUID `gorm:"not null;index;uniqueIndex:idx_certificates_course_student"`
	StudentWalletAddress string    `gorm:"size:42;not null;uniqueIndex:idx_certificates_course_student"`
	CourseTitle          string    `gorm:"size:255;not null"`
	MetadataURL          string    `gorm:"size:512;not null"`
	TransactionHash      string    `gorm:"size:66"`
	CompletionDate       time.Time

	Course Course `gorm:"foreignkey:CourseID"`

	CreatedAt time.Time
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
