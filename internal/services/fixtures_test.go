package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/events"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
	"github.com/mkrishnakr62/chatting-backend-app/internal/presence"
)

var errTest = errors.New("storage unavailable")

// In-memory repository fakes backing the service tests.

type memUsers struct {
	users map[uuid.UUID]models.User
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{users: make(map[uuid.UUID]models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Get(id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) GetMany(ids []uuid.UUID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type memChats struct {
	chats    map[uuid.UUID]models.Chat
	messages *memMessages
}

func newMemChats(messages *memMessages) *memChats {
	return &memChats{chats: make(map[uuid.UUID]models.Chat), messages: messages}
}

func (m *memChats) Create(chat *models.Chat) error {
	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}
	chat.CreatedAt = time.Now()
	m.chats[chat.ID] = *chat
	return nil
}

func (m *memChats) Get(id uuid.UUID) (*models.Chat, error) {
	chat, ok := m.chats[id]
	if !ok {
		return nil, apperr.ErrChatNotFound
	}
	chat.Members = append([]models.User(nil), chat.Members...)
	return &chat, nil
}

func (m *memChats) Update(chat *models.Chat) error {
	if _, ok := m.chats[chat.ID]; !ok {
		return apperr.ErrChatNotFound
	}
	m.chats[chat.ID] = *chat
	return nil
}

func (m *memChats) Delete(id uuid.UUID) error {
	if _, ok := m.chats[id]; !ok {
		return apperr.ErrChatNotFound
	}
	delete(m.chats, id)
	if m.messages != nil {
		m.messages.deleteByChat(id)
	}
	return nil
}

func (m *memChats) ListByMember(userID uuid.UUID) ([]models.Chat, error) {
	var out []models.Chat
	for _, chat := range m.chats {
		if chat.HasMember(userID) {
			out = append(out, chat)
		}
	}
	return out, nil
}

func (m *memChats) ListDirectByMember(userID uuid.UUID) ([]models.Chat, error) {
	var out []models.Chat
	for _, chat := range m.chats {
		if !chat.GroupChat && chat.HasMember(userID) {
			out = append(out, chat)
		}
	}
	return out, nil
}

func (m *memChats) ListGroupsByCreator(userID uuid.UUID) ([]models.Chat, error) {
	var out []models.Chat
	for _, chat := range m.chats {
		if chat.GroupChat && chat.CreatorID == userID {
			out = append(out, chat)
		}
	}
	return out, nil
}

type memMessages struct {
	msgs []models.Message
}

func (m *memMessages) Save(msg *models.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memMessages) Page(chatID uuid.UUID, skip, limit int) ([]models.Message, int64, error) {
	var inChat []models.Message
	for _, msg := range m.msgs {
		if msg.ChatID == chatID {
			inChat = append(inChat, msg)
		}
	}
	sort.Slice(inChat, func(i, j int) bool {
		return inChat[i].CreatedAt.After(inChat[j].CreatedAt)
	})

	total := int64(len(inChat))
	if skip >= len(inChat) {
		return nil, total, nil
	}
	inChat = inChat[skip:]
	if len(inChat) > limit {
		inChat = inChat[:limit]
	}
	return inChat, total, nil
}

func (m *memMessages) WithAttachments(chatID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.msgs {
		if msg.ChatID == chatID && len(msg.Attachments) > 0 {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memMessages) deleteByChat(chatID uuid.UUID) {
	var kept []models.Message
	for _, msg := range m.msgs {
		if msg.ChatID != chatID {
			kept = append(kept, msg)
		}
	}
	m.msgs = kept
}

type memRequests struct {
	requests map[uuid.UUID]models.FriendRequest
}

func newMemRequests() *memRequests {
	return &memRequests{requests: make(map[uuid.UUID]models.FriendRequest)}
}

func (m *memRequests) Create(req *models.FriendRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	m.requests[req.ID] = *req
	return nil
}

func (m *memRequests) Get(id uuid.UUID) (*models.FriendRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, apperr.ErrRequestNotFound
	}
	return &req, nil
}

func (m *memRequests) FindPending(userA, userB uuid.UUID) (*models.FriendRequest, error) {
	for _, req := range m.requests {
		if (req.SenderID == userA && req.ReceiverID == userB) ||
			(req.SenderID == userB && req.ReceiverID == userA) {
			return &req, nil
		}
	}
	return nil, nil
}

func (m *memRequests) Delete(id uuid.UUID) error {
	delete(m.requests, id)
	return nil
}

func (m *memRequests) ListByReceiver(userID uuid.UUID) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range m.requests {
		if req.ReceiverID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

type recordingRemover struct {
	removed [][]string
	fail    error
}

func (r *recordingRemover) Remove(publicIDs []string) error {
	r.removed = append(r.removed, publicIDs)
	return r.fail
}

func testDispatcher() *events.Dispatcher {
	return events.NewDispatcher(presence.NewRegistry())
}

func testUser(name string) models.User {
	return models.User{ID: uuid.New(), Name: name, Username: name}
}
