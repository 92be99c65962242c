package repository

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"placement-portal/backend/internal/model"
	pkgerrors "placement-portal/backend/pkg/errors"
)

// ProfileListFilters 学生档案过滤条件
type ProfileListFilters struct {
	Skills         []string // 任一匹配
	GraduationYear int
	MinCGPA        *float64
	MaxCGPA        *float64
	Program        string // 子串匹配
	Department     string
	Keyword        string // 姓名或邮箱
	IsVerified     *bool
}

// ProfileRepository 学生档案数据访问接口
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.StudentProfile) error
	GetByID(ctx context.Context, id string) (*model.StudentProfile, error)
	GetByUserID(ctx context.Context, userID string) (*model.StudentProfile, error)
	Update(ctx context.Context, profile *model.StudentProfile) error
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	List(ctx context.Context, filters *ProfileListFilters, page Page) ([]model.StudentProfile, int64, error)
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo 创建 ProfileRepository 实例
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *model.StudentProfile) error {
	return pkgerrors.TranslateDuplicate(r.db.WithContext(ctx).Create(profile).Error)
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("profile_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *model.StudentProfile) error {
	return r.db.WithContext(ctx).Omit("User").Save(profile).Error
}

func (r *profileRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.StudentProfile{})
	return res.RowsAffected, res.Error
}

func (r *profileRepo) List(ctx context.Context, filters *ProfileListFilters, page Page) ([]model.StudentProfile, int64, error) {
	var profiles []model.StudentProfile
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.StudentProfile{}).
		Joins("JOIN users ON users.user_id = student_profiles.user_id")

	if f := filters; f != nil {
		if len(f.Skills) > 0 {
			db = db.Where("student_profiles.skills && ?", pq.StringArray(f.Skills))
		}
		if f.GraduationYear > 0 {
			db = db.Where("student_profiles.graduation_year = ?", f.GraduationYear)
		}
		if f.MinCGPA != nil {
			db = db.Where("student_profiles.cgpa >= ?", *f.MinCGPA)
		}
		if f.MaxCGPA != nil {
			db = db.Where("student_profiles.cgpa <= ?", *f.MaxCGPA)
		}
		if f.Program != "" {
			db = db.Where("student_profiles.program ILIKE ?", "%"+escapeLike(f.Program)+"%")
		}
		if f.Department != "" {
			db = db.Where("users.department = ?", f.Department)
		}
		if f.Keyword != "" {
			kw := "%" + escapeLike(f.Keyword) + "%"
			db = db.Where("(users.name ILIKE ? OR users.email ILIKE ?)", kw, kw)
		}
		if f.IsVerified != nil {
			db = db.Where("student_profiles.is_verified = ?", *f.IsVerified)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := page.apply(db).
		Preload("User").
		Order("student_profiles.created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}
