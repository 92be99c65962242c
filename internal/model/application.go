package model

import (
	"time"

	"gorm.io/datatypes"
)

// 申请阶段
const (
	StageApplied            = "applied"
	StageScreening          = "screening"
	StageShortlisted        = "shortlisted"
	StageInterviewScheduled = "interview-scheduled"
	StageInterviewCompleted = "interview-completed"
	StageSelected           = "selected"
	StageRejected           = "rejected"
	StageWithdrawn          = "withdrawn"
)

// Scores 评分，均为 0-100，未评分为 nil
type Scores struct {
	Resume    *int `json:"resume_score,omitempty"`
	Interview *int `json:"interview_score,omitempty"`
	Technical *int `json:"technical_score,omitempty"`
	Overall   *int `json:"overall_score,omitempty"`
}

// ReviewerNote 评审备注
type ReviewerNote struct {
	ReviewerID string    `json:"reviewer_id"`
	Note       string    `json:"note"`
	Rating     int       `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// InterviewDetails 面试安排
type InterviewDetails struct {
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Location        string     `json:"location,omitempty"`
	MeetingLink     string     `json:"meeting_link,omitempty"`
	Interviewers    []string   `json:"interviewers,omitempty"`
	Feedback        string     `json:"feedback,omitempty"`
}

// Application 投递记录表 — 对应 applications，(job_id, student_id) 唯一
type Application struct {
	ApplicationID    string                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	JobID            string                             `gorm:"type:uuid;not null;uniqueIndex:uq_applications_job_student" json:"job_id"`
	StudentID        string                             `gorm:"type:uuid;not null;uniqueIndex:uq_applications_job_student" json:"student_id"`
	CoverLetter      string                             `gorm:"type:varchar(1000);not null;default:''"         json:"cover_letter"`
	ResumeURL        string                             `gorm:"column:resume_url;type:text;not null"           json:"resume_url"`
	Stage            string                             `gorm:"type:varchar(30);not null;default:'applied'"    json:"stage"`
	Scores           datatypes.JSONType[Scores]         `gorm:"type:jsonb;not null;default:'{}'"               json:"scores"`
	ReviewerNotes    datatypes.JSONSlice[ReviewerNote]  `gorm:"type:jsonb;not null;default:'[]'"               json:"reviewer_notes"`
	InterviewDetails datatypes.JSONType[InterviewDetails] `gorm:"type:jsonb"                                   json:"interview_details"`
	AppliedAt        time.Time                          `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"applied_at"`
	BaseModel

	// 关联
	Job     *Job  `gorm:"foreignKey:JobID;references:JobID"         json:"job,omitempty"`
	Student *User `gorm:"foreignKey:StudentID;references:UserID"    json:"student,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }
