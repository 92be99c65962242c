package model

import "time"

// 审核状态
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

// User 用户表 — 对应 users
type User struct {
	UserID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name               string     `gorm:"type:varchar(60);not null"                      json:"name"`
	Email              string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash       string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string     `gorm:"type:varchar(20);not null;default:'student'"    json:"role"` // student | recruiter | faculty | admin
	Department         string     `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	IsActive           bool       `gorm:"not null;default:true"                          json:"is_active"`
	ApprovalStatus     string     `gorm:"type:varchar(20);not null;default:'approved'"   json:"approval_status"` // pending | approved
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	ProfilePicture     string     `gorm:"type:text;not null;default:''"                  json:"profile_picture"`
	MustChangePassword bool       `gorm:"not null;default:false"                         json:"must_change_password"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// GetID 实现归属比较所需的主键访问
func (u *User) GetID() string { return u.UserID }
