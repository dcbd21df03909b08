package dto

type SendRequestRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type AcceptRequestRequest struct {
	RequestID string `json:"requestId" binding:"required"`
	Accept    *bool  `json:"accept" binding:"required"`
}
