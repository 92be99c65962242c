package repository

import (
	"context"

	"gorm.io/gorm"

	"placement-portal/backend/internal/model"
	pkgerrors "placement-portal/backend/pkg/errors"
)

// ApplicationRepository 投递记录数据访问接口
type ApplicationRepository interface {
	// Create 违反 (job_id, student_id) 唯一约束时返回 pkgerrors.ErrDuplicate
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	Update(ctx context.Context, app *model.Application) error
	ListByStudent(ctx context.Context, studentID, stage string, page Page) ([]model.Application, int64, error)
	ListByJob(ctx context.Context, jobID, stage string, page Page) ([]model.Application, int64, error)
	ExistsForJobStudent(ctx context.Context, jobID, studentID string) (bool, error)
	ListJobIDsByStudent(ctx context.Context, studentID string) ([]string, error)
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
	DeleteByJob(ctx context.Context, jobID string) (int64, error)
}

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	err := r.db.WithContext(ctx).Omit("Job", "Student").Create(app).Error
	return pkgerrors.TranslateDuplicate(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Student").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Omit("Job", "Student").Save(app).Error
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID, stage string, page Page) ([]model.Application, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Application{}).Where("student_id = ?", studentID)
	return r.list(db, stage, page, "Job")
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID, stage string, page Page) ([]model.Application, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Application{}).Where("job_id = ?", jobID)
	return r.list(db, stage, page, "Student")
}

func (r *applicationRepo) list(db *gorm.DB, stage string, page Page, preload string) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	if stage != "" {
		db = db.Where("stage = ?", stage)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := page.apply(db).
		Preload(preload).
		Order("applied_at DESC").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *applicationRepo) ExistsForJobStudent(ctx context.Context, jobID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("job_id = ? AND student_id = ?", jobID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) ListJobIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("student_id = ?", studentID).
		Distinct().
		Pluck("job_id", &ids).Error
	return ids, err
}

func (r *applicationRepo) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

func (r *applicationRepo) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Delete(&model.Application{})
	return res.RowsAffected, res.Error
}
