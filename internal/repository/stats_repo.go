package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"placement-portal/backend/internal/access"
)

// GroupCount 分组计数
type GroupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// YearCount 按毕业年份计数
type YearCount struct {
	Year  int   `gorm:"column:year"`
	Count int64 `gorm:"column:count"`
}

// StatsRepository 管理端统计查询
type StatsRepository interface {
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	CountVerifiedStudents(ctx context.Context) (int64, error)
	// AvgCGPA 仅统计非空 CGPA；无数据时 ok 为 false
	AvgCGPA(ctx context.Context) (avg float64, ok bool, err error)
	// CountJobs status 为空表示全部
	CountJobs(ctx context.Context, status string) (int64, error)
	CountApplications(ctx context.Context) (int64, error)
	ApplicationsByStage(ctx context.Context) ([]GroupCount, error)
	StudentsByGraduationYear(ctx context.Context) ([]YearCount, error)
	StudentsByDepartment(ctx context.Context, limit int) ([]GroupCount, error)
}

// statsRepo 用 squirrel 拼装聚合 SQL，经 gorm 执行（? 占位符由 gorm 转换）
type statsRepo struct {
	db *gorm.DB
	sb sq.StatementBuilderType
}

// NewStatsRepo 创建 StatsRepository 实例
func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db, sb: sq.StatementBuilder}
}

func (r *statsRepo) count(ctx context.Context, b sq.SelectBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.db.WithContext(ctx).Raw(query, args...).Scan(&n).Error
	return n, err
}

func (r *statsRepo) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").From("users").Where(sq.Eq{"role": role}))
}

func (r *statsRepo) CountVerifiedStudents(ctx context.Context) (int64, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").
		From("student_profiles").
		Where(sq.Eq{"is_verified": true}))
}

func (r *statsRepo) AvgCGPA(ctx context.Context) (float64, bool, error) {
	query, args, err := r.sb.Select("AVG(cgpa)::float8").
		From("student_profiles").
		Where(sq.NotEq{"cgpa": nil}).
		ToSql()
	if err != nil {
		return 0, false, err
	}
	var avg *float64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&avg).Error; err != nil {
		return 0, false, err
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

func (r *statsRepo) CountJobs(ctx context.Context, status string) (int64, error) {
	b := r.sb.Select("COUNT(*)").From("jobs")
	if status != "" {
		b = b.Where(sq.Eq{"status": status})
	}
	return r.count(ctx, b)
}

func (r *statsRepo) CountApplications(ctx context.Context) (int64, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").From("applications"))
}

func (r *statsRepo) ApplicationsByStage(ctx context.Context) ([]GroupCount, error) {
	query, args, err := r.sb.Select("stage AS key", "COUNT(*) AS count").
		From("applications").
		GroupBy("stage").
		OrderBy("stage ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	var out []GroupCount
	err = r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error
	return out, err
}

func (r *statsRepo) StudentsByGraduationYear(ctx context.Context) ([]YearCount, error) {
	query, args, err := r.sb.Select("graduation_year AS year", "COUNT(*) AS count").
		From("student_profiles").
		Where(sq.NotEq{"graduation_year": nil}).
		GroupBy("graduation_year").
		OrderBy("graduation_year ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	var out []YearCount
	err = r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error
	return out, err
}

// StudentsByDepartment 按 users.department 分组，数量降序，同数量按名称升序
func (r *statsRepo) StudentsByDepartment(ctx context.Context, limit int) ([]GroupCount, error) {
	b := r.sb.Select("u.department AS key", "COUNT(*) AS count").
		From("student_profiles p").
		Join("users u ON u.user_id = p.user_id").
		Where(sq.Eq{"u.role": string(access.RoleStudent)}).
		Where(sq.NotEq{"u.department": ""}).
		GroupBy("u.department").
		OrderBy("count DESC", "key ASC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var out []GroupCount
	err = r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error
	return out, err
}
