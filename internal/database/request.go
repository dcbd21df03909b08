package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

type RequestRepo struct {
	db *gorm.DB
}

func (r *RequestRepo) Create(req *models.FriendRequest) error {
	return r.db.Create(req).Error
}

func (r *RequestRepo) Get(id uuid.UUID) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Preload("Sender").Preload("Receiver").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindPending looks for a pending request between the two users in
// either direction. A missing request is not an error; nil is
// returned.
func (r *RequestRepo) FindPending(userA, userB uuid.UUID) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.FriendRequest{}, "id = ?", id).Error
}

func (r *RequestRepo) ListByReceiver(userID uuid.UUID) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.Preload("Sender").Where("receiver_id = ?", userID).Find(&reqs).Error
	return reqs, err
}
