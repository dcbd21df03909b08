package dto

type AttachmentRef struct {
	PublicID string `json:"public_id" binding:"required"`
	URL      string `json:"url" binding:"required"`
}

type SendMessageRequest struct {
	ChatID      string          `json:"chatId" binding:"required"`
	Content     string          `json:"content"`
	Attachments []AttachmentRef `json:"attachments" binding:"max=5"`
}
