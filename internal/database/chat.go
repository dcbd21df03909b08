package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

type ChatRepo struct {
	db *gorm.DB
}

func (r *ChatRepo) Create(chat *models.Chat) error {
	return r.db.Create(chat).Error
}

func (r *ChatRepo) Get(id uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.Preload("Members").First(&chat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// Update persists the chat row and replaces its membership rows with
// the current roster.
func (r *ChatRepo) Update(chat *models.Chat) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Save(chat).Error; err != nil {
			return err
		}
		return tx.Model(chat).Association("Members").Replace(chat.Members)
	})
}

// Delete cascades: messages first, then membership rows, then the
// chat itself, all in one transaction.
func (r *ChatRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Message{}, "chat_id = ?", id).Error; err != nil {
			return err
		}

		var chat models.Chat
		if err := tx.First(&chat, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrChatNotFound
			}
			return err
		}

		if err := tx.Model(&chat).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(&chat).Error
	})
}

func (r *ChatRepo) ListByMember(userID uuid.UUID) ([]models.Chat, error) {
	return r.listForMember(userID, r.db.Preload("Members"))
}

func (r *ChatRepo) ListDirectByMember(userID uuid.UUID) ([]models.Chat, error) {
	return r.listForMember(userID, r.db.Preload("Members").Where("chats.group_chat = ?", false))
}

func (r *ChatRepo) ListGroupsByCreator(userID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.Preload("Members").
		Where("group_chat = ? AND creator_id = ?", true, userID).
		Find(&chats).Error
	return chats, err
}

func (r *ChatRepo) listForMember(userID uuid.UUID, query *gorm.DB) ([]models.Chat, error) {
	var chats []models.Chat
	err := query.
		Joins("JOIN chat_members cm ON cm.chat_id = chats.id").
		Where("cm.user_id = ?", userID).
		Find(&chats).Error
	return chats, err
}
