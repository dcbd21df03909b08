package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/mkrishnakr62/chatting-backend-app/internal/handlers"
	"github.com/mkrishnakr62/chatting-backend-app/internal/middleware"
	"github.com/mkrishnakr62/chatting-backend-app/pkg/auth"
)

func APIEndpoints(r *gin.Engine, jwtMgr *auth.JWTManager, rdb *redis.Client,
	authH *handlers.AuthHandler, userH *handlers.UserHandler,
	chatH *handlers.ChatHandler, wsH *handlers.WebSocketHandler) {

	user := r.Group("/user")
	{
		user.POST("/new", authH.Register)
		user.POST("/login", authH.Login)

		authed := user.Group("", middleware.AuthMiddleware(jwtMgr, rdb))
		{
			authed.GET("/me", userH.Me)
			authed.GET("/logout", authH.Logout)
			authed.GET("/search", userH.Search)
			authed.PUT("/sendrequest", userH.SendRequest)
			authed.PUT("/acceptrequest", userH.AcceptRequest)
			authed.GET("/notifications", userH.Notifications)
			authed.GET("/friends", userH.Friends)
		}
	}

	chat := r.Group("/chat", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		chat.POST("/new", chatH.NewGroup)
		chat.GET("/my", chatH.MyChats)
		chat.GET("/my/groups", chatH.MyGroups)
		chat.PUT("/addmembers", chatH.AddMembers)
		chat.PUT("/removemembers", chatH.RemoveMember)
		chat.DELETE("/leave/:id", chatH.Leave)

		chat.POST("/message", chatH.SendMessage)
		chat.GET("/message/:id", chatH.GetMessages)

		chat.GET("/:id", chatH.Details)
		chat.PUT("/:id", chatH.Rename)
		chat.DELETE("/:id", chatH.Delete)
	}

	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.Handle)
}
