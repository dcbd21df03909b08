package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

type UserRepo struct {
	db *gorm.DB
}

func (r *UserRepo) Save(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepo) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetMany(ids []uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SearchByName matches a name fragment case-insensitively, excluding
// the given ids.
func (r *UserRepo) SearchByName(fragment string, excludeIDs []uuid.UUID) ([]models.User, error) {
	var users []models.User
	query := r.db.Where("name ILIKE ?", "%"+fragment+"%")
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *UserRepo) UpdateLastSeen(id uuid.UUID) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}
