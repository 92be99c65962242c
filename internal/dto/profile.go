package dto

import "time"

// ── 学生档案 DTO ──

// ProjectInput 项目经历
type ProjectInput struct {
	Title        string     `json:"title"        binding:"required,max=100"`
	Description  string     `json:"description"  binding:"omitempty,max=500"`
	Technologies []string   `json:"technologies" binding:"omitempty,max=20,dive,max=50"`
	URL          string     `json:"url"          binding:"omitempty,http_url"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// CreateProfileRequest 创建档案
type CreateProfileRequest struct {
	Program        string         `json:"program"         binding:"required,max=100"`
	GraduationYear *int           `json:"graduation_year" binding:"required,min=2020,max=2030"`
	CGPA           *float64       `json:"cgpa"            binding:"omitempty,min=0,max=10"`
	Skills         []string       `json:"skills"          binding:"omitempty,max=20,dive,required,max=50"`
	Projects       []ProjectInput `json:"projects"        binding:"omitempty,max=20,dive"`
	ResumeURL      string         `json:"resume_url"      binding:"omitempty,http_url"`
	GitHubURL      string         `json:"github_url"      binding:"omitempty,github_url"`
	LinkedInURL    string         `json:"linkedin_url"    binding:"omitempty,linkedin_url"`
	PortfolioURL   string         `json:"portfolio_url"   binding:"omitempty,http_url"`
	Bio            string         `json:"bio"             binding:"omitempty,max=500"`
	IsComplete     *bool          `json:"is_complete"`
}

// UpdateProfileRequest 部分更新档案，nil 字段保持不变
type UpdateProfileRequest struct {
	Program        *string         `json:"program"         binding:"omitempty,max=100"`
	GraduationYear *int            `json:"graduation_year" binding:"omitempty,min=2020,max=2030"`
	CGPA           *float64        `json:"cgpa"            binding:"omitempty,min=0,max=10"`
	Skills         *[]string       `json:"skills"          binding:"omitempty,max=20,dive,required,max=50"`
	Projects       *[]ProjectInput `json:"projects"        binding:"omitempty,max=20,dive"`
	ResumeURL      *string         `json:"resume_url"      binding:"omitempty,http_url"`
	GitHubURL      *string         `json:"github_url"      binding:"omitempty,github_url"`
	LinkedInURL    *string         `json:"linkedin_url"    binding:"omitempty,linkedin_url"`
	PortfolioURL   *string         `json:"portfolio_url"   binding:"omitempty,http_url"`
	Bio            *string         `json:"bio"             binding:"omitempty,max=500"`
	IsComplete     *bool           `json:"is_complete"`
}

// ProfileListRequest 档案检索参数，skills 以逗号分隔
type ProfileListRequest struct {
	PaginationRequest
	Skills         string   `form:"skills"          binding:"omitempty,max=500"`
	GraduationYear int      `form:"graduation_year" binding:"omitempty,min=2020,max=2030"`
	MinCGPA        *float64 `form:"min_cgpa"        binding:"omitempty,min=0,max=10"`
	MaxCGPA        *float64 `form:"max_cgpa"        binding:"omitempty,min=0,max=10"`
	Program        string   `form:"program"         binding:"omitempty,max=100"`
	Department     string   `form:"department"      binding:"omitempty,max=100"`
	Keyword        string   `form:"keyword"         binding:"omitempty,max=50"`
	IsVerified     *bool    `form:"is_verified"`
}

// ProjectResponse 项目经历响应
type ProjectResponse struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
}

// ProfileResponse 档案响应，completion_percentage 每次读取时计算
type ProfileResponse struct {
	ID                   string            `json:"id"`
	UserID               string            `json:"user_id"`
	Program              string            `json:"program"`
	GraduationYear       *int              `json:"graduation_year"`
	CGPA                 *float64          `json:"cgpa"`
	Skills               []string          `json:"skills"`
	Projects             []ProjectResponse `json:"projects"`
	ResumeURL            string            `json:"resume_url"`
	GitHubURL            string            `json:"github_url"`
	LinkedInURL          string            `json:"linkedin_url"`
	PortfolioURL         string            `json:"portfolio_url"`
	Bio                  string            `json:"bio"`
	ResumeVerified       bool              `json:"resume_verified"`
	AcademicVerified     bool              `json:"academic_verified"`
	IdentityVerified     bool              `json:"identity_verified"`
	IsVerified           bool              `json:"is_verified"`
	VerifiedAt           *string           `json:"verified_at"`
	IsComplete           bool              `json:"is_complete"`
	CompletionPercentage int               `json:"completion_percentage"`
	User                 *UserBrief        `json:"user,omitempty"`
	CreatedAt            string            `json:"created_at"`
	UpdatedAt            string            `json:"updated_at"`
}
