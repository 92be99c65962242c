package repository

import (
	"context"

	"gorm.io/gorm"

	"placement-portal/backend/internal/model"
)

// VerificationQueueFilters 审核队列过滤条件
type VerificationQueueFilters struct {
	Status       string // 默认 pending
	DocumentType string
}

// VerificationRepository 材料认证数据访问接口
type VerificationRepository interface {
	Create(ctx context.Context, v *model.Verification) error
	GetByID(ctx context.Context, id string) (*model.Verification, error)
	Update(ctx context.Context, v *model.Verification) error
	ListByStudent(ctx context.Context, studentID string) ([]model.Verification, error)
	// ListQueue 按提交时间升序，先到先审
	ListQueue(ctx context.Context, filters *VerificationQueueFilters, page Page) ([]model.Verification, int64, error)
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

type verificationRepo struct {
	db *gorm.DB
}

// NewVerificationRepo 创建 VerificationRepository 实例
func NewVerificationRepo(db *gorm.DB) VerificationRepository {
	return &verificationRepo{db: db}
}

func (r *verificationRepo) Create(ctx context.Context, v *model.Verification) error {
	return r.db.WithContext(ctx).Omit("Student").Create(v).Error
}

func (r *verificationRepo) GetByID(ctx context.Context, id string) (*model.Verification, error) {
	var v model.Verification
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("verification_id = ?", id).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *verificationRepo) Update(ctx context.Context, v *model.Verification) error {
	return r.db.WithContext(ctx).Omit("Student").Save(v).Error
}

func (r *verificationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Verification, error) {
	var list []model.Verification
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&list).Error
	return list, err
}

func (r *verificationRepo) ListQueue(ctx context.Context, filters *VerificationQueueFilters, page Page) ([]model.Verification, int64, error) {
	var list []model.Verification
	var total int64

	status := model.VerificationPending
	db := r.db.WithContext(ctx).Model(&model.Verification{})
	if f := filters; f != nil {
		if f.Status != "" {
			status = f.Status
		}
		if f.DocumentType != "" {
			db = db.Where("document_type = ?", f.DocumentType)
		}
	}
	db = db.Where("status = ?", status)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := page.apply(db).
		Preload("Student").
		Order("submitted_at ASC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *verificationRepo) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&model.Verification{})
	return res.RowsAffected, res.Error
}
