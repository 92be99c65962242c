package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Profile      ProfileRepository
	Job          JobRepository
	Application  ApplicationRepository
	Department   DepartmentRepository
	Skill        SkillRepository
	Verification VerificationRepository
	Stats        StatsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Profile:      NewProfileRepo(db),
		Job:          NewJobRepo(db),
		Application:  NewApplicationRepo(db),
		Department:   NewDepartmentRepo(db),
		Skill:        NewSkillRepo(db),
		Verification: NewVerificationRepo(db),
		Stats:        NewStatsRepo(db),
	}
}

// Transaction 在同一事务内执行 fn，fn 收到绑定事务的 Repository
// 未绑定数据库（单元测试中的内存实现）时直接以自身执行
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// ── 分页 ──

// Page 偏移分页参数
type Page struct {
	Offset int
	Limit  int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}
