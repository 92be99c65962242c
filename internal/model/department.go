package model

import "github.com/lib/pq"

// Department 院系表 — 对应 departments
type Department struct {
	DepartmentID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_departments_name" json:"name"`
	Code         string         `gorm:"type:varchar(20);not null;uniqueIndex:uq_departments_code"  json:"code"`
	Description  string         `gorm:"type:varchar(500);not null;default:''"          json:"description"`
	Programs     pq.StringArray `gorm:"type:text[];not null;default:'{}'"              json:"programs"`
	IsActive     bool           `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
