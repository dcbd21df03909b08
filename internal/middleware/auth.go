package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/pkg/auth"
)

const UserIDKey = "userID"

// AuthMiddleware validates the JWT (cookie or bearer header) and puts
// the user id into the gin context.
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractToken(c.Request)
		if err != nil {
			abortUnauthorized(c, "missing or invalid token")
			return
		}
		authenticate(c, jwtManager, redisClient, token)
	}
}

// WSAuthMiddleware authenticates the realtime upgrade request; browser
// websocket clients can only pass the token as a query parameter.
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token, _ = auth.ExtractToken(c.Request)
		}
		if token == "" {
			abortUnauthorized(c, "missing token")
			return
		}
		authenticate(c, jwtManager, redisClient, token)
	}
}

func authenticate(c *gin.Context, jwtManager *auth.JWTManager, redisClient *redis.Client, token string) {
	exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
	if err != nil || exists > 0 {
		abortUnauthorized(c, "token is blacklisted")
		return
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		abortUnauthorized(c, "invalid token")
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		abortUnauthorized(c, "invalid user id")
		return
	}

	c.Set(UserIDKey, userID)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
	c.Abort()
}
