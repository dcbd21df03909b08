package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/internal/database"
	"github.com/mkrishnakr62/chatting-backend-app/internal/handlers/dto"
	"github.com/mkrishnakr62/chatting-backend-app/internal/services"
)

type UserHandler struct {
	users   *database.UserRepo
	friends *services.FriendService
}

func NewUserHandler(users *database.UserRepo, friends *services.FriendService) *UserHandler {
	return &UserHandler{users: users, friends: friends}
}

// Me returns the requester's profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID := currentUser(c)

	user, err := h.users.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":           user.ID,
			"name":         user.Name,
			"username":     user.Username,
			"bio":          user.Bio,
			"avatar_url":   user.AvatarURL,
			"created_at":   user.CreatedAt,
			"last_seen_at": user.LastSeenAt,
		},
	})
}

// Search finds users by name fragment, excluding the requester and
// their existing direct-chat partners.
func (h *UserHandler) Search(c *gin.Context) {
	userID := currentUser(c)
	fragment := c.Query("name")

	friends, err := h.friends.Friends(userID, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	exclude := make([]uuid.UUID, 0, len(friends)+1)
	exclude = append(exclude, userID)
	for _, f := range friends {
		exclude = append(exclude, f.ID)
	}

	users, err := h.users.SearchByName(fragment, exclude)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(users))
	for i, u := range users {
		result[i] = gin.H{
			"id":     u.ID,
			"name":   u.Name,
			"avatar": u.AvatarURL,
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": result})
}

func (h *UserHandler) SendRequest(c *gin.Context) {
	userID := currentUser(c)

	var req dto.SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	receiverID, ok := parseID(c, req.UserID)
	if !ok {
		return
	}

	if err := h.friends.SendRequest(userID, receiverID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "friend request sent"})
}

func (h *UserHandler) AcceptRequest(c *gin.Context) {
	userID := currentUser(c)

	var req dto.AcceptRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	requestID, ok := parseID(c, req.RequestID)
	if !ok {
		return
	}

	chat, err := h.friends.Respond(requestID, userID, *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	if chat == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "friend request rejected"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "friend request accepted",
		"chatId":  chat.ID,
	})
}

// Notifications lists the requester's pending incoming requests.
func (h *UserHandler) Notifications(c *gin.Context) {
	userID := currentUser(c)

	requests, err := h.friends.Notifications(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(requests))
	for i, r := range requests {
		result[i] = gin.H{
			"id": r.ID,
			"sender": gin.H{
				"id":     r.Sender.ID,
				"name":   r.Sender.Name,
				"avatar": r.Sender.AvatarURL,
			},
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requests": result})
}

// Friends lists direct-chat partners; ?chatId= filters to those not
// yet in the given chat.
func (h *UserHandler) Friends(c *gin.Context) {
	userID := currentUser(c)

	var chatID *uuid.UUID
	if raw := c.Query("chatId"); raw != "" {
		id, ok := parseID(c, raw)
		if !ok {
			return
		}
		chatID = &id
	}

	friends, err := h.friends.Friends(userID, chatID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(friends))
	for i, f := range friends {
		result[i] = gin.H{
			"id":     f.ID,
			"name":   f.Name,
			"avatar": f.AvatarURL,
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "friends": result})
}
