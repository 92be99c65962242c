package repository

import (
	"context"

	"gorm.io/gorm"

	"placement-portal/backend/internal/model"
	pkgerrors "placement-portal/backend/pkg/errors"
)

// SkillListFilters 技能过滤条件
type SkillListFilters struct {
	Category   string
	Keyword    string
	ActiveOnly bool
}

// CategoryCount 分类及其技能数
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// SkillRepository 技能目录数据访问接口
type SkillRepository interface {
	Create(ctx context.Context, skill *model.Skill) error
	GetByID(ctx context.Context, id string) (*model.Skill, error)
	List(ctx context.Context, filters *SkillListFilters) ([]model.Skill, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
	Update(ctx context.Context, skill *model.Skill) error
	Delete(ctx context.Context, id string) error
	// IncrementUsage 目录中存在的技能 usage_count 加 1，不存在的忽略
	IncrementUsage(ctx context.Context, names []string) error
}

type skillRepo struct {
	db *gorm.DB
}

// NewSkillRepo 创建 SkillRepository 实例
func NewSkillRepo(db *gorm.DB) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, skill *model.Skill) error {
	return pkgerrors.TranslateDuplicate(r.db.WithContext(ctx).Create(skill).Error)
}

func (r *skillRepo) GetByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.WithContext(ctx).Where("skill_id = ?", id).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepo) List(ctx context.Context, filters *SkillListFilters) ([]model.Skill, error) {
	var skills []model.Skill
	db := r.db.WithContext(ctx)
	if f := filters; f != nil {
		if f.Category != "" {
			db = db.Where("category = ?", f.Category)
		}
		if f.Keyword != "" {
			db = db.Where("name ILIKE ?", "%"+escapeLike(f.Keyword)+"%")
		}
		if f.ActiveOnly {
			db = db.Where("is_active = ?", true)
		}
	}
	err := db.Order("usage_count DESC, name ASC").Find(&skills).Error
	return skills, err
}

func (r *skillRepo) Categories(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&model.Skill{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category").
		Order("category ASC").
		Scan(&out).Error
	return out, err
}

func (r *skillRepo) Update(ctx context.Context, skill *model.Skill) error {
	return pkgerrors.TranslateDuplicate(r.db.WithContext(ctx).Save(skill).Error)
}

func (r *skillRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("skill_id = ?", id).Delete(&model.Skill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *skillRepo) IncrementUsage(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Skill{}).
		Where("name IN ?", names).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
