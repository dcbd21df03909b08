package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ChatID      uuid.UUID `gorm:"not null;index"`
	SenderID    uuid.UUID `gorm:"not null"`
	Content     string
	Attachments Attachments `gorm:"type:jsonb"`
	CreatedAt   time.Time

	Sender User `gorm:"foreignKey:SenderID"`
	Chat   Chat `gorm:"foreignKey:ChatID"`
}

// Attachment is a reference into the external object store.
type Attachment struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *Attachments) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	default:
		return errors.New("unsupported attachments column type")
	}
}
