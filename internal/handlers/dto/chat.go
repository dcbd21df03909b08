package dto

type NewGroupRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members" binding:"required,min=2,max=100"`
}

type AddMembersRequest struct {
	ChatID  string   `json:"chatId" binding:"required"`
	Members []string `json:"members" binding:"required,min=1,max=97"`
}

type RemoveMemberRequest struct {
	ChatID string `json:"chatId" binding:"required"`
	UserID string `json:"userId" binding:"required"`
}

type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}
