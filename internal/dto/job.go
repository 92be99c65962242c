package dto

import "time"

// ── 岗位模块 DTO ──

// CreateJobRequest 发布岗位
// company 与 company_name 二选一；type 为客户端原始值，服务端归一化
// requirements 在 skills 为空时作为技能列表
type CreateJobRequest struct {
	Title               string    `json:"title"                binding:"required,max=100"`
	Description         string    `json:"description"          binding:"required,max=2000"`
	Company             string    `json:"company"              binding:"omitempty,max=100"`
	CompanyName         string    `json:"company_name"         binding:"required_without=Company,max=100"`
	CompanyLogo         string    `json:"company_logo"         binding:"omitempty,http_url"`
	Skills              []string  `json:"skills"               binding:"omitempty,max=20,dive,required,max=50"`
	Requirements        []string  `json:"requirements"         binding:"omitempty,max=20,dive,required,max=50"`
	MinCGPA             *float64  `json:"min_cgpa"             binding:"omitempty,min=0,max=10"`
	AllowedPrograms     []string  `json:"allowed_programs"     binding:"omitempty,max=20,dive,max=100"`
	GraduationYears     []int     `json:"graduation_years"     binding:"omitempty,max=11,dive,min=2020,max=2030"`
	Location            string    `json:"location"             binding:"required,max=200"`
	LocationType        string    `json:"location_type"        binding:"omitempty,oneof=remote onsite hybrid"`
	Type                string    `json:"type"                 binding:"omitempty,max=20"`
	JobType             string    `json:"job_type"             binding:"omitempty,max=20"`
	StipendMin          *int      `json:"stipend_min"          binding:"omitempty,min=0"`
	StipendMax          *int      `json:"stipend_max"          binding:"omitempty,min=0"`
	StipendCurrency     string    `json:"stipend_currency"     binding:"omitempty,len=3"`
	DurationValue       int       `json:"duration_value"       binding:"omitempty,min=0,max=120"`
	DurationUnit        string    `json:"duration_unit"        binding:"omitempty,oneof=weeks months"`
	Openings            int       `json:"openings"             binding:"omitempty,min=1,max=10000"`
	ApplicationDeadline time.Time `json:"application_deadline" binding:"required"`
	Status              string    `json:"status"               binding:"omitempty,oneof=draft active"`
	Tags                []string  `json:"tags"                 binding:"omitempty,max=20,dive,max=30"`
}

// UpdateJobRequest 更新岗位，nil 字段保持不变
type UpdateJobRequest struct {
	Title               *string    `json:"title"                binding:"omitempty,max=100"`
	Description         *string    `json:"description"          binding:"omitempty,max=2000"`
	CompanyName         *string    `json:"company_name"         binding:"omitempty,max=100"`
	CompanyLogo         *string    `json:"company_logo"         binding:"omitempty,http_url"`
	Skills              *[]string  `json:"skills"               binding:"omitempty,max=20,dive,required,max=50"`
	MinCGPA             *float64   `json:"min_cgpa"             binding:"omitempty,min=0,max=10"`
	AllowedPrograms     *[]string  `json:"allowed_programs"     binding:"omitempty,max=20,dive,max=100"`
	GraduationYears     *[]int     `json:"graduation_years"     binding:"omitempty,max=11,dive,min=2020,max=2030"`
	Location            *string    `json:"location"             binding:"omitempty,max=200"`
	LocationType        *string    `json:"location_type"        binding:"omitempty,oneof=remote onsite hybrid"`
	Type                *string    `json:"type"                 binding:"omitempty,max=20"`
	StipendMin          *int       `json:"stipend_min"          binding:"omitempty,min=0"`
	StipendMax          *int       `json:"stipend_max"          binding:"omitempty,min=0"`
	DurationValue       *int       `json:"duration_value"       binding:"omitempty,min=0,max=120"`
	DurationUnit        *string    `json:"duration_unit"        binding:"omitempty,oneof=weeks months"`
	Openings            *int       `json:"openings"             binding:"omitempty,min=1,max=10000"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	Tags                *[]string  `json:"tags"                 binding:"omitempty,max=20,dive,max=30"`
}

// UpdateJobStatusRequest 变更岗位状态
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active closed cancelled"`
}

// JobListRequest 岗位列表参数，status 缺省为 active，all 表示不限
type JobListRequest struct {
	PaginationRequest
	Status       string `form:"status"        binding:"omitempty,oneof=draft active closed cancelled all"`
	Search       string `form:"search"        binding:"omitempty,max=100"`
	Skills       string `form:"skills"        binding:"omitempty,max=500"`
	LocationType string `form:"location_type" binding:"omitempty,oneof=remote onsite hybrid"`
	JobType      string `form:"job_type"      binding:"omitempty,max=20"`
}

// JobResponse 岗位响应
type JobResponse struct {
	ID                  string     `json:"id"`
	RecruiterID         string     `json:"recruiter_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	CompanyName         string     `json:"company_name"`
	CompanyLogo         string     `json:"company_logo"`
	Skills              []string   `json:"skills"`
	MinCGPA             float64    `json:"min_cgpa"`
	AllowedPrograms     []string   `json:"allowed_programs"`
	GraduationYears     []int      `json:"graduation_years"`
	Location            string     `json:"location"`
	LocationType        string     `json:"location_type"`
	JobType             string     `json:"job_type"`
	StipendMin          int        `json:"stipend_min"`
	StipendMax          int        `json:"stipend_max"`
	StipendCurrency     string     `json:"stipend_currency"`
	DurationValue       int        `json:"duration_value"`
	DurationUnit        string     `json:"duration_unit"`
	Openings            int        `json:"openings"`
	ApplicationDeadline string     `json:"application_deadline"`
	Status              string     `json:"status"`
	ApplicationCount    int        `json:"application_count"`
	Tags                []string   `json:"tags"`
	IsExpired           bool       `json:"is_expired"`
	DaysRemaining       int        `json:"days_remaining"`
	Recruiter           *UserBrief `json:"recruiter,omitempty"`
	CreatedAt           string     `json:"created_at"`
	UpdatedAt           string     `json:"updated_at"`
}
