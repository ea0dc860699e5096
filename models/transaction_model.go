package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transaction struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	FromWalletAddress string    `gorm:"size:42;not null;index"`
	ToWalletAddress   string    `gorm:"size:42;not null;index"`
	AmountYD          float64   `gorm:"type:numeric(20,8);not null"`
	TransactionType   string    `gorm:"size:30;not null"`
	TransactionHash   *string   `gorm:"size:66;unique"`
	Status            string    `gorm:"size:20;not null;default:'pending'"`
	Metadata          *string   `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
