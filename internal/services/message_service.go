package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/events"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

// PageSize is the fixed transcript page size.
const PageSize = 20

const maxAttachments = 5

// MessageService is the append-only message store façade.
type MessageService struct {
	chats    ChatRepository
	messages MessageRepository
	users    UserRepository
	events   *events.Dispatcher
}

func NewMessageService(chats ChatRepository, messages MessageRepository, users UserRepository, dispatcher *events.Dispatcher) *MessageService {
	return &MessageService{
		chats:    chats,
		messages: messages,
		users:    users,
		events:   dispatcher,
	}
}

// NewMessagePayload is the realtime shape pushed alongside a stored
// message.
type NewMessagePayload struct {
	Message RealtimeMessage `json:"message"`
	ChatID  string          `json:"chatId"`
}

type RealtimeMessage struct {
	ID          uuid.UUID          `json:"id"`
	ChatID      uuid.UUID          `json:"chat"`
	Content     string             `json:"content"`
	Attachments models.Attachments `json:"attachments"`
	Sender      SenderInfo         `json:"sender"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type SenderInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Send appends a message to a chat and fans it out to the roster. A
// message needs content, attachments (1-5), or both.
func (s *MessageService) Send(chatID, senderID uuid.UUID, content string, attachments models.Attachments) (*models.Message, error) {
	if len(attachments) > maxAttachments {
		return nil, apperr.ErrTooManyAttachments
	}
	if content == "" && len(attachments) == 0 {
		return nil, apperr.ErrEmptyMessage
	}

	chat, err := s.chats.Get(chatID)
	if err != nil {
		return nil, err
	}

	sender, err := s.users.Get(senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   time.Now(),
	}
	if err := s.messages.Save(msg); err != nil {
		return nil, err
	}

	roster := chat.MemberIDs()
	s.events.Emit(events.TypeNewMessage, roster, NewMessagePayload{
		ChatID: chatID.String(),
		Message: RealtimeMessage{
			ID:          msg.ID,
			ChatID:      chatID,
			Content:     msg.Content,
			Attachments: msg.Attachments,
			Sender:      SenderInfo{ID: sender.ID, Name: sender.Name},
			CreatedAt:   msg.CreatedAt,
		},
	})
	s.events.Emit(events.TypeNewMessageAlert, roster, events.MessageAlertPayload{
		ChatID: chatID.String(),
	})

	return msg, nil
}

// Page returns one transcript page for a member, oldest-first for
// display, plus the total page count. Pagination is offset-based and
// only stable between fetches when nothing is inserted concurrently.
func (s *MessageService) Page(chatID, requesterID uuid.UUID, page int) ([]models.Message, int, error) {
	if page < 1 {
		page = 1
	}

	chat, err := s.chats.Get(chatID)
	if err != nil {
		return nil, 0, err
	}
	if !chat.HasMember(requesterID) {
		return nil, 0, apperr.ErrNotAMember
	}

	skip := (page - 1) * PageSize
	msgs, total, err := s.messages.Page(chatID, skip, PageSize)
	if err != nil {
		return nil, 0, err
	}

	// Newest-first from the store, oldest-first for the transcript.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return msgs, totalPages, nil
}
