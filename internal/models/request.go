package models

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequest only exists while pending. Accepting or rejecting
// deletes the record.
type FriendRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID   uuid.UUID `gorm:"not null;index"`
	ReceiverID uuid.UUID `gorm:"not null;index"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}
