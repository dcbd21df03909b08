package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

type MessageRepo struct {
	db *gorm.DB
}

func (r *MessageRepo) Save(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// Page returns up to limit messages newest-first starting at skip,
// plus the chat's total message count.
func (r *MessageRepo) Page(chatID uuid.UUID, skip, limit int) ([]models.Message, int64, error) {
	var total int64
	if err := r.db.Model(&models.Message{}).Where("chat_id = ?", chatID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var msgs []models.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Preload("Sender").
		Find(&msgs).Error
	if err != nil {
		return nil, 0, err
	}

	return msgs, total, nil
}

func (r *MessageRepo) WithAttachments(chatID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.
		Where("chat_id = ? AND attachments::text NOT IN ('[]', 'null')", chatID).
		Find(&msgs).Error
	return msgs, err
}
