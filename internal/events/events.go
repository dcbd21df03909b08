package events

import (
	"encoding/json"
	"time"
)

type Kind string

const (
	// TypeAlert is a human-readable system line for a chat transcript,
	// e.g. "X has been added to the group".
	TypeAlert Kind = "ALERT"

	// TypeRefetchChats tells the client its chat roster changed and the
	// chat list should be refetched.
	TypeRefetchChats Kind = "REFETCH_CHATS"

	TypeNewMessage      Kind = "NEW_MESSAGE"
	TypeNewMessageAlert Kind = "NEW_MESSAGE_ALERT"
	TypeNewRequest      Kind = "NEW_REQUEST"
)

// Envelope is the single framing for every realtime push: one event
// object per push, self-contained and idempotent to apply.
type Envelope struct {
	Event     Kind            `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// AlertPayload accompanies Alert events.
type AlertPayload struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// MessageAlertPayload accompanies NEW_MESSAGE_ALERT events; it is a
// lightweight unread-badge signal.
type MessageAlertPayload struct {
	ChatID string `json:"chatId"`
}
