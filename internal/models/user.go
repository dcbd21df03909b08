package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Bio          string
	PasswordHash string `gorm:"not null"`
	AvatarURL    string
	LastSeenAt   time.Time
	CreatedAt    time.Time
}
