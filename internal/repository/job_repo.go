package repository

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"placement-portal/backend/internal/model"
)

// JobListFilters 岗位过滤条件
type JobListFilters struct {
	Status       string // 空表示不限
	RecruiterID  string
	Search       string // 标题、公司、描述
	Skills       []string
	LocationType string
	JobType      string
}

// JobRepository 岗位数据访问接口
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *JobListFilters, page Page) ([]model.Job, int64, error)
	// IncrementApplicationCount 原子地调整投递计数
	IncrementApplicationCount(ctx context.Context, id string, delta int) error
	// RecomputeApplicationCounts 按 applications 实际行数重算计数
	RecomputeApplicationCounts(ctx context.Context, ids []string) error
}

type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo 创建 JobRepository 实例
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Omit("Recruiter").Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Preload("Recruiter").
		Where("job_id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Omit("Recruiter", "application_count").Save(job).Error
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("job_id = ?", id).Delete(&model.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *jobRepo) List(ctx context.Context, filters *JobListFilters, page Page) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Job{})
	if f := filters; f != nil {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.RecruiterID != "" {
			db = db.Where("recruiter_id = ?", f.RecruiterID)
		}
		if f.Search != "" {
			kw := "%" + escapeLike(f.Search) + "%"
			db = db.Where("(title ILIKE ? OR company_name ILIKE ? OR description ILIKE ?)", kw, kw, kw)
		}
		if len(f.Skills) > 0 {
			db = db.Where("skills && ?", pq.StringArray(f.Skills))
		}
		if f.LocationType != "" {
			db = db.Where("location_type = ?", f.LocationType)
		}
		if f.JobType != "" {
			db = db.Where("job_type = ?", f.JobType)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := page.apply(db).
		Preload("Recruiter").
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) IncrementApplicationCount(ctx context.Context, id string, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("job_id = ?", id).
		UpdateColumn("application_count", gorm.Expr("GREATEST(application_count + ?, 0)", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *jobRepo) RecomputeApplicationCounts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE jobs SET application_count = (
			SELECT COUNT(*) FROM applications a WHERE a.job_id = jobs.job_id
		)
		WHERE job_id IN ?`, ids).Error
}
