package model

// 技能分类
var SkillCategories = []string{
	"programming", "framework", "database", "devops", "cloud",
	"design", "testing", "soft-skill", "other",
}

// Skill 技能目录表 — 对应 skills，name 统一小写
type Skill struct {
	SkillID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string `gorm:"type:varchar(50);not null;uniqueIndex:uq_skills_name" json:"name"`
	Category   string `gorm:"type:varchar(20);not null;default:'other'"      json:"category"`
	UsageCount int    `gorm:"not null;default:0"                             json:"usage_count"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Skill) TableName() string { return "skills" }
