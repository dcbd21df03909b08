package dto

type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
