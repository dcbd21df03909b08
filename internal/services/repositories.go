package services

import (
	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

// Repository interfaces keep the document store an abstract
// collaborator; internal/database provides the Postgres implementation.

type ChatRepository interface {
	Create(chat *models.Chat) error
	Get(id uuid.UUID) (*models.Chat, error)
	Update(chat *models.Chat) error
	// Delete removes the chat, its membership rows and its messages in
	// one transaction.
	Delete(id uuid.UUID) error
	ListByMember(userID uuid.UUID) ([]models.Chat, error)
	ListDirectByMember(userID uuid.UUID) ([]models.Chat, error)
	ListGroupsByCreator(userID uuid.UUID) ([]models.Chat, error)
}

type MessageRepository interface {
	Save(msg *models.Message) error
	// Page returns up to limit messages newest-first starting at skip,
	// plus the chat's total message count.
	Page(chatID uuid.UUID, skip, limit int) ([]models.Message, int64, error)
	WithAttachments(chatID uuid.UUID) ([]models.Message, error)
}

type UserRepository interface {
	Get(id uuid.UUID) (*models.User, error)
	GetMany(ids []uuid.UUID) ([]models.User, error)
}

type RequestRepository interface {
	Create(req *models.FriendRequest) error
	Get(id uuid.UUID) (*models.FriendRequest, error)
	// FindPending looks up a pending request between the two users in
	// either direction.
	FindPending(userA, userB uuid.UUID) (*models.FriendRequest, error)
	Delete(id uuid.UUID) error
	ListByReceiver(userID uuid.UUID) ([]models.FriendRequest, error)
}
