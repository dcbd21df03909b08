package database

import (
	"errors"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.Message{},
		&models.FriendRequest{},
	); err != nil {
		return err
	}

	d.db = db
	return nil
}

func (d *Database) Chats() *ChatRepo {
	return &ChatRepo{db: d.db}
}

func (d *Database) Messages() *MessageRepo {
	return &MessageRepo{db: d.db}
}

func (d *Database) Users() *UserRepo {
	return &UserRepo{db: d.db}
}

func (d *Database) Requests() *RequestRepo {
	return &RequestRepo{db: d.db}
}
