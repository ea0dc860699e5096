package models

import (
	"time"
)

type User struct {
	WalletAddress  string  `gorm:"size:42;primary_key"`
	Username       string  `gorm:"size:100"`
	Email          string  `gorm:"size:255"`
	Role           string  `gorm:"size:20;not null;default:'student'"`
	YdTokenBalance float64 `gorm:"type:numeric(20,8);default:0"`
	AvatarURL      *string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
