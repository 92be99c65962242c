package dto

// ── 院系模块 DTO ──

// CreateDepartmentRequest 创建院系
type CreateDepartmentRequest struct {
	Name        string   `json:"name"        binding:"required,min=2,max=100"`
	Code        string   `json:"code"        binding:"required,min=2,max=20,alphanum"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Programs    []string `json:"programs"    binding:"omitempty,max=50,dive,required,max=100"`
}

// UpdateDepartmentRequest 更新院系
type UpdateDepartmentRequest struct {
	Name        *string   `json:"name"        binding:"omitempty,min=2,max=100"`
	Code        *string   `json:"code"        binding:"omitempty,min=2,max=20,alphanum"`
	Description *string   `json:"description" binding:"omitempty,max=500"`
	Programs    *[]string `json:"programs"    binding:"omitempty,max=50,dive,required,max=100"`
	IsActive    *bool     `json:"is_active"`
}

// DepartmentListRequest 院系列表参数，缺省仅返回启用的
type DepartmentListRequest struct {
	IsActive *bool `form:"is_active"`
}

// DepartmentResponse 院系响应
type DepartmentResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Programs    []string `json:"programs"`
	IsActive    bool     `json:"is_active"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
