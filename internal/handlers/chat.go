package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/internal/handlers/dto"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
	"github.com/mkrishnakr62/chatting-backend-app/internal/presence"
	"github.com/mkrishnakr62/chatting-backend-app/internal/services"
)

type ChatHandler struct {
	chats    *services.ChatService
	messages *services.MessageService
	registry *presence.Registry
}

func NewChatHandler(chats *services.ChatService, messages *services.MessageService, registry *presence.Registry) *ChatHandler {
	return &ChatHandler{chats: chats, messages: messages, registry: registry}
}

// NewGroup creates a group chat from the creator plus the listed
// members.
func (h *ChatHandler) NewGroup(c *gin.Context) {
	userID := currentUser(c)

	var req dto.NewGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	memberIDs, ok := parseIDs(c, req.Members)
	if !ok {
		return
	}

	chat, err := h.chats.NewGroupChat(userID, req.Name, memberIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "group chat created",
		"chat":    formatChat(chat),
	})
}

// MyChats lists the requester's chats in the client's list shape:
// direct chats are named after the other member, group avatars sample
// the first three members.
func (h *ChatHandler) MyChats(c *gin.Context) {
	userID := currentUser(c)

	chats, err := h.chats.MyChats(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(chats))
	for i := range chats {
		result[i] = formatChatForList(&chats[i], userID)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "chats": result})
}

// MyGroups lists the groups the requester created.
func (h *ChatHandler) MyGroups(c *gin.Context) {
	userID := currentUser(c)

	groups, err := h.chats.MyGroups(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(groups))
	for i, chat := range groups {
		result[i] = gin.H{
			"id":        chat.ID,
			"groupChat": chat.GroupChat,
			"name":      chat.Name,
			"avatar":    avatarSample(chat.Members, 3),
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "groups": result})
}

func (h *ChatHandler) AddMembers(c *gin.Context) {
	userID := currentUser(c)

	var req dto.AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	chatID, ok := parseID(c, req.ChatID)
	if !ok {
		return
	}
	memberIDs, ok := parseIDs(c, req.Members)
	if !ok {
		return
	}

	if err := h.chats.AddMembers(chatID, userID, memberIDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "members added successfully"})
}

func (h *ChatHandler) RemoveMember(c *gin.Context) {
	userID := currentUser(c)

	var req dto.RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	chatID, ok := parseID(c, req.ChatID)
	if !ok {
		return
	}
	targetID, ok := parseID(c, req.UserID)
	if !ok {
		return
	}

	if err := h.chats.RemoveMember(chatID, userID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "member removed successfully"})
}

func (h *ChatHandler) Leave(c *gin.Context) {
	userID := currentUser(c)

	chatID, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.chats.Leave(chatID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "left group successfully"})
}

// SendMessage appends a message with optional attachment references
// (the binary upload itself happens against the object store, not
// here).
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := currentUser(c)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	chatID, ok := parseID(c, req.ChatID)
	if !ok {
		return
	}

	attachments := make(models.Attachments, len(req.Attachments))
	for i, a := range req.Attachments {
		attachments[i] = models.Attachment{PublicID: a.PublicID, URL: a.URL}
	}

	msg, err := h.messages.Send(chatID, userID, req.Content, attachments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": gin.H{
			"id":          msg.ID,
			"chat":        msg.ChatID,
			"sender":      msg.SenderID,
			"content":     msg.Content,
			"attachments": msg.Attachments,
			"created_at":  msg.CreatedAt,
		},
	})
}

// GetMessages returns one transcript page, oldest-first.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID := currentUser(c)

	chatID, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	msgs, totalPages, err := h.messages.Page(chatID, userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(msgs))
	for i, msg := range msgs {
		result[i] = gin.H{
			"id":          msg.ID,
			"chat":        msg.ChatID,
			"content":     msg.Content,
			"attachments": msg.Attachments,
			"created_at":  msg.CreatedAt,
			"sender": gin.H{
				"id":   msg.Sender.ID,
				"name": msg.Sender.Name,
			},
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"messages":   result,
		"totalPages": totalPages,
	})
}

// Details returns a chat; with ?populate=true members carry profile
// fields and live presence.
func (h *ChatHandler) Details(c *gin.Context) {
	chatID, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	chat, err := h.chats.Details(chatID)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("populate") == "true" {
		members := make([]gin.H, len(chat.Members))
		for i, m := range chat.Members {
			members[i] = gin.H{
				"id":         m.ID,
				"name":       m.Name,
				"avatar":     m.AvatarURL,
				"is_online":  h.registry.Online(m.ID),
				"is_creator": chat.GroupChat && m.ID == chat.CreatorID,
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"chat": gin.H{
				"id":        chat.ID,
				"name":      chat.Name,
				"groupChat": chat.GroupChat,
				"creator":   chat.CreatorID,
				"members":   members,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "chat": formatChat(chat)})
}

func (h *ChatHandler) Rename(c *gin.Context) {
	userID := currentUser(c)

	chatID, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.chats.Rename(chatID, userID, req.Name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "group renamed successfully"})
}

func (h *ChatHandler) Delete(c *gin.Context) {
	userID := currentUser(c)

	chatID, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.chats.Delete(chatID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "chat deleted successfully"})
}

func formatChat(chat *models.Chat) gin.H {
	return gin.H{
		"id":        chat.ID,
		"name":      chat.Name,
		"groupChat": chat.GroupChat,
		"creator":   chat.CreatorID,
		"members":   chat.MemberIDs(),
	}
}

func formatChatForList(chat *models.Chat, me uuid.UUID) gin.H {
	name := chat.Name
	var avatars []string
	others := make([]uuid.UUID, 0, len(chat.Members))

	if chat.GroupChat {
		avatars = avatarSample(chat.Members, 3)
	}
	for _, m := range chat.Members {
		if m.ID == me {
			continue
		}
		others = append(others, m.ID)
		if !chat.GroupChat {
			name = m.Name
			avatars = []string{m.AvatarURL}
		}
	}

	return gin.H{
		"id":        chat.ID,
		"groupChat": chat.GroupChat,
		"name":      name,
		"avatar":    avatars,
		"members":   others,
	}
}

func avatarSample(members []models.User, n int) []string {
	avatars := make([]string, 0, n)
	for _, m := range members {
		if len(avatars) == n {
			break
		}
		avatars = append(avatars, m.AvatarURL)
	}
	return avatars
}
