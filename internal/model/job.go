package model

import (
	"math"
	"time"

	"github.com/lib/pq"
)

// 岗位状态
const (
	JobStatusDraft     = "draft"
	JobStatusActive    = "active"
	JobStatusClosed    = "closed"
	JobStatusCancelled = "cancelled"
)

// 岗位类型
const (
	JobTypeInternship = "internship"
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
)

// 工作地点类型
const (
	LocationRemote = "remote"
	LocationOnsite = "onsite"
	LocationHybrid = "hybrid"
)

// Job 岗位表 — 对应 jobs
type Job struct {
	JobID               string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecruiterID         string         `gorm:"type:uuid;not null;index"                       json:"recruiter_id"`
	Title               string         `gorm:"type:varchar(100);not null"                     json:"title"`
	Description         string         `gorm:"type:varchar(2000);not null"                    json:"description"`
	CompanyName         string         `gorm:"type:varchar(100);not null"                     json:"company_name"`
	CompanyLogo         string         `gorm:"type:text;not null;default:''"                  json:"company_logo"`
	Skills              pq.StringArray `gorm:"type:text[];not null;default:'{}'"              json:"skills"`
	MinCGPA             float64        `gorm:"column:min_cgpa;type:numeric(4,2);not null;default:0" json:"min_cgpa"`
	AllowedPrograms     pq.StringArray `gorm:"type:text[];not null;default:'{}'"              json:"allowed_programs"`
	GraduationYears     IntArray       `gorm:"type:int[];not null;default:'{}'"               json:"graduation_years"`
	Location            string         `gorm:"type:varchar(200);not null"                     json:"location"`
	LocationType        string         `gorm:"type:varchar(20);not null;default:'onsite'"     json:"location_type"` // remote | onsite | hybrid
	JobType             string         `gorm:"type:varchar(20);not null;default:'internship'" json:"job_type"`      // internship | full-time | part-time | contract
	StipendMin          int            `gorm:"not null;default:0"                             json:"stipend_min"`
	StipendMax          int            `gorm:"not null;default:0"                             json:"stipend_max"`
	StipendCurrency     string         `gorm:"type:varchar(10);not null;default:'INR'"        json:"stipend_currency"`
	DurationValue       int            `gorm:"not null;default:0"                             json:"duration_value"`
	DurationUnit        string         `gorm:"type:varchar(10);not null;default:'months'"     json:"duration_unit"` // weeks | months
	Openings            int            `gorm:"not null;default:1"                             json:"openings"`
	ApplicationDeadline time.Time      `gorm:"not null"                                       json:"application_deadline"`
	Status              string         `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // draft | active | closed | cancelled
	ApplicationCount    int            `gorm:"not null;default:0"                             json:"application_count"`
	Tags                pq.StringArray `gorm:"type:text[];not null;default:'{}'"              json:"tags"`
	BaseModel

	// 关联
	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Job) TableName() string { return "jobs" }

// IsExpired 截止时间已过
func (j *Job) IsExpired(now time.Time) bool {
	return now.After(j.ApplicationDeadline)
}

// DaysRemaining 距截止的剩余天数（向上取整，过期为 0）
func (j *Job) DaysRemaining(now time.Time) int {
	d := j.ApplicationDeadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}
