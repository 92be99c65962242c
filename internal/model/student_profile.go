package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Project 学生项目经历，作为 JSONB 数组存储
type Project struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Technologies []string   `json:"technologies,omitempty"`
	URL          string     `json:"url,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// StudentProfile 学生档案表 — 对应 student_profiles，与 users 一对一
type StudentProfile struct {
	ProfileID        string                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           string                      `gorm:"type:uuid;not null;uniqueIndex:uq_student_profiles_user" json:"user_id"`
	Program          string                      `gorm:"type:varchar(100);not null;default:''"          json:"program"`
	GraduationYear   *int                        `json:"graduation_year,omitempty"`
	CGPA             *float64                    `gorm:"column:cgpa;type:numeric(4,2)"                  json:"cgpa,omitempty"`
	Skills           pq.StringArray              `gorm:"type:text[];not null;default:'{}'"              json:"skills"`
	Projects         datatypes.JSONSlice[Project] `gorm:"type:jsonb;not null;default:'[]'"              json:"projects"`
	ResumeURL        string                      `gorm:"column:resume_url;type:text;not null;default:''"    json:"resume_url"`
	GitHubURL        string                      `gorm:"column:github_url;type:text;not null;default:''"    json:"github_url"`
	LinkedInURL      string                      `gorm:"column:linkedin_url;type:text;not null;default:''"  json:"linkedin_url"`
	PortfolioURL     string                      `gorm:"column:portfolio_url;type:text;not null;default:''" json:"portfolio_url"`
	Bio              string                      `gorm:"type:varchar(500);not null;default:''"          json:"bio"`
	ResumeVerified   bool                        `gorm:"not null;default:false"                         json:"resume_verified"`
	AcademicVerified bool                        `gorm:"not null;default:false"                         json:"academic_verified"`
	IdentityVerified bool                        `gorm:"not null;default:false"                         json:"identity_verified"`
	IsVerified       bool                        `gorm:"not null;default:false"                         json:"is_verified"`
	VerifiedAt       *time.Time                  `json:"verified_at,omitempty"`
	IsComplete       bool                        `gorm:"not null;default:false"                         json:"is_complete"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (StudentProfile) TableName() string { return "student_profiles" }
