package models

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"not null"`
	GroupChat bool      `gorm:"not null;default:false"`
	// CreatorID is meaningful only for group chats; direct chats carry
	// no creator authority.
	CreatorID uuid.UUID
	CreatedAt time.Time

	Members []User `gorm:"many2many:chat_members"`
}

// MemberIDs returns the roster as a plain id slice.
func (c *Chat) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Members))
	for _, m := range c.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

// HasMember reports whether userID is in the roster.
func (c *Chat) HasMember(userID uuid.UUID) bool {
	for _, m := range c.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
