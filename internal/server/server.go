package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/mkrishnakr62/chatting-backend-app/internal/database"
	"github.com/mkrishnakr62/chatting-backend-app/internal/events"
	"github.com/mkrishnakr62/chatting-backend-app/internal/handlers"
	"github.com/mkrishnakr62/chatting-backend-app/internal/presence"
	"github.com/mkrishnakr62/chatting-backend-app/internal/services"
	"github.com/mkrishnakr62/chatting-backend-app/internal/storage"
	"github.com/mkrishnakr62/chatting-backend-app/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Registry   *presence.Registry
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	db := &database.Database{}
	if err := db.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(os.Getenv("JWT_SECRET"), 24*time.Hour)

	registry := presence.NewRegistry()
	dispatcher := events.NewDispatcher(registry)

	chats := db.Chats()
	messages := db.Messages()
	users := db.Users()
	requests := db.Requests()

	chatSvc := services.NewChatService(chats, messages, users, storage.LogRemover{}, dispatcher)
	messageSvc := services.NewMessageService(chats, messages, users, dispatcher)
	friendSvc := services.NewFriendService(requests, chats, users, dispatcher)

	authH := handlers.NewAuthHandler(users, jwtMgr, rdb)
	userH := handlers.NewUserHandler(users, friendSvc)
	chatH := handlers.NewChatHandler(chatSvc, messageSvc, registry)
	wsH := handlers.NewWebSocketHandler(registry)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, chatH, wsH)

	return &Server{
		Router:     router,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Registry:   registry,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
