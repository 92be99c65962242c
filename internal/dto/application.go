package dto

import "time"

// ── 投递模块 DTO ──

// ApplyRequest 投递岗位；经 /jobs/:id/apply 投递时 job_id 取路径参数
type ApplyRequest struct {
	JobID       string `json:"job_id"       binding:"omitempty,uuid"`
	CoverLetter string `json:"cover_letter" binding:"omitempty,max=1000"`
	ResumeURL   string `json:"resume_url"   binding:"omitempty,http_url"`
}

// UpdateStageRequest 变更投递阶段
type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// AddNoteRequest 添加评审备注
type AddNoteRequest struct {
	Note   string `json:"note"   binding:"required,max=500"`
	Rating int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// ScheduleInterviewRequest 安排面试
type ScheduleInterviewRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at"     binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
	Location        string    `json:"location"         binding:"omitempty,max=200"`
	MeetingLink     string    `json:"meeting_link"     binding:"omitempty,http_url"`
	Interviewers    []string  `json:"interviewers"     binding:"omitempty,max=10,dive,max=100"`
}

// UpdateScoresRequest 评分，nil 保持不变
type UpdateScoresRequest struct {
	Resume    *int `json:"resume_score"    binding:"omitempty,min=0,max=100"`
	Interview *int `json:"interview_score" binding:"omitempty,min=0,max=100"`
	Technical *int `json:"technical_score" binding:"omitempty,min=0,max=100"`
	Overall   *int `json:"overall_score"   binding:"omitempty,min=0,max=100"`
}

// ApplicationListRequest 投递列表参数
type ApplicationListRequest struct {
	PaginationRequest
	Stage string `form:"stage" binding:"omitempty,max=30"`
}

// ScoresResponse 评分
type ScoresResponse struct {
	Resume    *int `json:"resume_score"`
	Interview *int `json:"interview_score"`
	Technical *int `json:"technical_score"`
	Overall   *int `json:"overall_score"`
}

// ReviewerNoteResponse 评审备注
type ReviewerNoteResponse struct {
	ReviewerID string `json:"reviewer_id"`
	Note       string `json:"note"`
	Rating     int    `json:"rating,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// InterviewResponse 面试安排
type InterviewResponse struct {
	ScheduledAt     *string  `json:"scheduled_at"`
	DurationMinutes int      `json:"duration_minutes"`
	Location        string   `json:"location,omitempty"`
	MeetingLink     string   `json:"meeting_link,omitempty"`
	Interviewers    []string `json:"interviewers,omitempty"`
}

// JobBrief 投递记录中展示的岗位摘要
type JobBrief struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	CompanyName         string `json:"company_name"`
	Location            string `json:"location"`
	JobType             string `json:"job_type"`
	Status              string `json:"status"`
	ApplicationDeadline string `json:"application_deadline"`
}

// ApplicationResponse 投递记录响应
type ApplicationResponse struct {
	ID            string                 `json:"id"`
	JobID         string                 `json:"job_id"`
	StudentID     string                 `json:"student_id"`
	CoverLetter   string                 `json:"cover_letter"`
	ResumeURL     string                 `json:"resume_url"`
	Stage         string                 `json:"stage"`
	Scores        ScoresResponse         `json:"scores"`
	ReviewerNotes []ReviewerNoteResponse `json:"reviewer_notes"`
	Interview     *InterviewResponse     `json:"interview_details,omitempty"`
	AppliedAt     string                 `json:"applied_at"`
	UpdatedAt     string                 `json:"updated_at"`
	Job           *JobBrief              `json:"job,omitempty"`
	Student       *UserBrief             `json:"student,omitempty"`
}
