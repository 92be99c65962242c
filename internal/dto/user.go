package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	Department         string  `json:"department"`
	IsActive           bool    `json:"is_active"`
	ApprovalStatus     string  `json:"approval_status"`
	ProfilePicture     string  `json:"profile_picture"`
	MustChangePassword bool    `json:"must_change_password"`
	LastLoginAt        *string `json:"last_login_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role     string `form:"role"      binding:"omitempty,oneof=student recruiter faculty admin"`
	IsActive *bool  `form:"is_active"`
	Keyword  string `form:"keyword"   binding:"omitempty,max=50"`
}

// CreateFacultyRequest 管理员创建教师账号
type CreateFacultyRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=60"`
	Email      string `json:"email"      binding:"required,email,max=255"`
	Department string `json:"department" binding:"required,max=100"`
}

// CreateFacultyResponse 创建教师账号响应，临时密码仅返回一次
type CreateFacultyResponse struct {
	User         UserResponse `json:"user"`
	TempPassword string       `json:"temp_password"`
}

// UpdateUserStatusRequest 启用/停用账号
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
