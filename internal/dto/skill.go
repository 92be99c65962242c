package dto

// ── 技能目录 DTO ──

// CreateSkillRequest 创建技能
type CreateSkillRequest struct {
	Name     string `json:"name"     binding:"required,max=50"`
	Category string `json:"category" binding:"omitempty,oneof=programming framework database devops cloud design testing soft-skill other"`
}

// UpdateSkillRequest 更新技能
type UpdateSkillRequest struct {
	Name     *string `json:"name"      binding:"omitempty,max=50"`
	Category *string `json:"category"  binding:"omitempty,oneof=programming framework database devops cloud design testing soft-skill other"`
	IsActive *bool   `json:"is_active"`
}

// SkillListRequest 技能列表参数
type SkillListRequest struct {
	Category string `form:"category" binding:"omitempty,max=20"`
	Search   string `form:"search"   binding:"omitempty,max=50"`
	Active   *bool  `form:"active"`
}

// SkillResponse 技能响应
type SkillResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	UsageCount int    `json:"usage_count"`
	IsActive   bool   `json:"is_active"`
}

// SkillCategoryResponse 分类统计
type SkillCategoryResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
