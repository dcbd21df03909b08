package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkrishnakr62/chatting-backend-app/internal/database"
	"github.com/mkrishnakr62/chatting-backend-app/internal/handlers/dto"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
	"github.com/mkrishnakr62/chatting-backend-app/pkg/auth"
)

type AuthHandler struct {
	users      *database.UserRepo
	jwtManager *auth.JWTManager
	redis      *redis.Client
}

func NewAuthHandler(users *database.UserRepo, jwtMgr *auth.JWTManager, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{users: users, jwtManager: jwtMgr, redis: rdb}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.users.Save(user); err != nil {
		respondBadRequest(c, "failed to create user")
		return
	}

	h.sendToken(c, user, http.StatusCreated, "user created")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.FindByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	if err := h.users.UpdateLastSeen(user.ID); err != nil {
		respondError(c, err)
		return
	}

	h.sendToken(c, user, http.StatusOK, "welcome back "+user.Name)
}

// Logout blacklists the token in redis until it expires and clears the
// session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractToken(c.Request)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}

	h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, time.Until(exp))
	c.SetCookie(auth.TokenCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out successfully"})
}

func (h *AuthHandler) sendToken(c *gin.Context, user *models.User, status int, message string) {
	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(auth.TokenCookie, token, int(h.jwtManager.Duration().Seconds()), "/", "", false, true)
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"token":   token,
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"username":   user.Username,
			"bio":        user.Bio,
			"avatar_url": user.AvatarURL,
		},
	})
}
