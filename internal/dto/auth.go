package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求，仅允许 student / recruiter 自助注册
type RegisterRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=60"`
	Email      string `json:"email"      binding:"required,email,max=255"`
	Password   string `json:"password"   binding:"required,min=6,max=72"`
	Role       string `json:"role"       binding:"omitempty,oneof=student recruiter faculty admin"`
	Department string `json:"department" binding:"omitempty,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // 秒
	User      UserResponse `json:"user"`
}
