package dto

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse Token 对
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // Access Token 有效期（秒）
}

// CurrentUserResponse 当前调用方身份（来自 Token）
type CurrentUserResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
