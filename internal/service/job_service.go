package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
)

// ── 岗位模块业务错误 ──

var (
	ErrJobNotFound        = errors.New("岗位不存在")
	ErrNotJobOwner        = errors.New("无权操作该岗位")
	ErrJobHasApplications = errors.New("岗位已有投递记录，无法删除")
	ErrJobCompanyRequired = errors.New("公司名称不能为空")
	ErrJobStipendRange    = errors.New("薪资下限不能高于上限")
	ErrJobDeadlinePast    = errors.New("截止时间必须晚于当前时间")
)

// NormalizeJobType 将客户端传入的岗位类型归一化为标准枚举，未知值按 internship 处理
func NormalizeJobType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fulltime", "full-time", "full_time", "full time":
		return model.JobTypeFullTime
	case "parttime", "part-time", "part_time", "part time":
		return model.JobTypePartTime
	case "contract":
		return model.JobTypeContract
	default:
		return model.JobTypeInternship
	}
}

// JobService 岗位业务接口
type JobService interface {
	// List 公开列表，status 缺省为 active
	List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error)
	// ListAll 管理端列表，status 缺省为全部
	ListAll(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error)
	ListByRecruiter(ctx context.Context, recruiterID string, req *dto.JobListRequest) ([]dto.JobResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.JobResponse, error)
	Create(ctx context.Context, req *dto.CreateJobRequest, callerID string) (*dto.JobResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID, callerRole string) (*dto.JobResponse, error)
	UpdateStatus(ctx context.Context, id, status, callerID, callerRole string) (*dto.JobResponse, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
}

type jobService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewJobService 创建 JobService 实例
func NewJobService(repo *repository.Repository, logger *zap.Logger) JobService {
	return &jobService{repo: repo, logger: logger}
}

// ────────────────────── 列表 ──────────────────────

func (s *jobService) List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	status := req.Status
	if status == "" {
		status = model.JobStatusActive
	}
	return s.list(ctx, req, status, "")
}

func (s *jobService) ListAll(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	return s.list(ctx, req, req.Status, "")
}

func (s *jobService) ListByRecruiter(ctx context.Context, recruiterID string, req *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	return s.list(ctx, req, req.Status, recruiterID)
}

func (s *jobService) list(ctx context.Context, req *dto.JobListRequest, status, recruiterID string) ([]dto.JobResponse, int64, error) {
	if status == "all" {
		status = ""
	}
	filters := &repository.JobListFilters{
		Status:       status,
		RecruiterID:  recruiterID,
		Search:       strings.TrimSpace(req.Search),
		Skills:       splitCSV(req.Skills),
		LocationType: req.LocationType,
	}
	if req.JobType != "" {
		filters.JobType = NormalizeJobType(req.JobType)
	}

	jobs, total, err := s.repo.Job.List(ctx, filters, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询岗位列表失败", zap.Error(err))
		return nil, 0, err
	}

	now := time.Now()
	list := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		list = append(list, toJobResponse(&jobs[i], now))
	}
	return list, total, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.getJob(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toJobResponse(job, time.Now())
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *jobService) Create(ctx context.Context, req *dto.CreateJobRequest, callerID string) (*dto.JobResponse, error) {
	company := strings.TrimSpace(req.CompanyName)
	if company == "" {
		company = strings.TrimSpace(req.Company)
	}
	if company == "" {
		return nil, ErrJobCompanyRequired
	}
	if !req.ApplicationDeadline.After(time.Now()) {
		return nil, ErrJobDeadlinePast
	}

	skills := req.Skills
	if len(skills) == 0 {
		skills = req.Requirements
	}
	skills = normalizeList(skills, false)

	rawType := req.Type
	if rawType == "" {
		rawType = req.JobType
	}

	job := &model.Job{
		RecruiterID:         callerID,
		Title:               strings.TrimSpace(req.Title),
		Description:         strings.TrimSpace(req.Description),
		CompanyName:         company,
		CompanyLogo:         req.CompanyLogo,
		Skills:              skills,
		AllowedPrograms:     normalizeList(req.AllowedPrograms, false),
		GraduationYears:     req.GraduationYears,
		Location:            strings.TrimSpace(req.Location),
		LocationType:        model.LocationOnsite,
		JobType:             NormalizeJobType(rawType),
		StipendCurrency:     "INR",
		DurationValue:       req.DurationValue,
		DurationUnit:        "months",
		Openings:            1,
		ApplicationDeadline: req.ApplicationDeadline.UTC(),
		Status:              model.JobStatusActive,
		Tags:                normalizeList(req.Tags, false),
		BaseModel:           model.BaseModel{CreatedBy: &callerID},
	}
	if req.MinCGPA != nil {
		job.MinCGPA = *req.MinCGPA
	}
	if req.LocationType != "" {
		job.LocationType = req.LocationType
	}
	if req.StipendMin != nil {
		job.StipendMin = *req.StipendMin
	}
	if req.StipendMax != nil {
		job.StipendMax = *req.StipendMax
	}
	if req.StipendCurrency != "" {
		job.StipendCurrency = strings.ToUpper(req.StipendCurrency)
	}
	if req.DurationUnit != "" {
		job.DurationUnit = req.DurationUnit
	}
	if req.Openings > 0 {
		job.Openings = req.Openings
	}
	if req.Status != "" {
		job.Status = req.Status
	}
	if err := checkStipend(job); err != nil {
		return nil, err
	}

	if err := s.repo.Job.Create(ctx, job); err != nil {
		s.logger.Error("创建岗位失败", zap.Error(err))
		return nil, err
	}
	bumpSkillUsage(ctx, s.repo, s.logger, skills)

	s.logger.Info("发布岗位", zap.String("job_id", job.JobID), zap.String("recruiter_id", callerID))
	return s.Get(ctx, job.JobID)
}

// ────────────────────── Update ──────────────────────

func (s *jobService) Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID, callerRole string) (*dto.JobResponse, error) {
	job, err := s.getOwnedJob(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	var added []string
	if req.Skills != nil {
		skills := normalizeList(*req.Skills, false)
		added = newEntries(job.Skills, skills)
		job.Skills = skills
	}
	setTrimmed(&job.Title, req.Title)
	setTrimmed(&job.Description, req.Description)
	setTrimmed(&job.CompanyName, req.CompanyName)
	setTrimmed(&job.CompanyLogo, req.CompanyLogo)
	setTrimmed(&job.Location, req.Location)
	if job.CompanyName == "" {
		return nil, ErrJobCompanyRequired
	}
	if req.MinCGPA != nil {
		job.MinCGPA = *req.MinCGPA
	}
	if req.AllowedPrograms != nil {
		job.AllowedPrograms = normalizeList(*req.AllowedPrograms, false)
	}
	if req.GraduationYears != nil {
		job.GraduationYears = *req.GraduationYears
	}
	if req.LocationType != nil {
		job.LocationType = *req.LocationType
	}
	if req.Type != nil {
		job.JobType = NormalizeJobType(*req.Type)
	}
	if req.StipendMin != nil {
		job.StipendMin = *req.StipendMin
	}
	if req.StipendMax != nil {
		job.StipendMax = *req.StipendMax
	}
	if req.DurationValue != nil {
		job.DurationValue = *req.DurationValue
	}
	if req.DurationUnit != nil {
		job.DurationUnit = *req.DurationUnit
	}
	if req.Openings != nil {
		job.Openings = *req.Openings
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline.UTC()
	}
	if req.Tags != nil {
		job.Tags = normalizeList(*req.Tags, false)
	}
	if err := checkStipend(job); err != nil {
		return nil, err
	}

	job.UpdatedBy = &callerID
	if err := s.repo.Job.Update(ctx, job); err != nil {
		s.logger.Error("更新岗位失败", zap.Error(err))
		return nil, err
	}
	bumpSkillUsage(ctx, s.repo, s.logger, added)

	resp := toJobResponse(job, time.Now())
	return &resp, nil
}

func (s *jobService) UpdateStatus(ctx context.Context, id, status, callerID, callerRole string) (*dto.JobResponse, error) {
	job, err := s.getOwnedJob(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	job.Status = status
	job.UpdatedBy = &callerID
	if err := s.repo.Job.Update(ctx, job); err != nil {
		s.logger.Error("更新岗位状态失败", zap.Error(err))
		return nil, err
	}
	resp := toJobResponse(job, time.Now())
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 非管理员仅能删除无投递的岗位；管理员在同一事务内连同投递记录删除
func (s *jobService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	job, err := s.getOwnedJob(ctx, id, callerID, callerRole)
	if err != nil {
		return err
	}

	isAdmin := access.HasRole(callerRole, access.RoleAdmin)
	if !isAdmin {
		_, n, err := s.repo.Application.ListByJob(ctx, job.JobID, "", repository.Page{Limit: 1})
		if err != nil {
			s.logger.Error("统计岗位投递失败", zap.Error(err))
			return err
		}
		if n > 0 {
			return ErrJobHasApplications
		}
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if isAdmin {
			if _, err := tx.Application.DeleteByJob(ctx, job.JobID); err != nil {
				return err
			}
		}
		return tx.Job.Delete(ctx, job.JobID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		s.logger.Error("删除岗位失败", zap.Error(err))
		return err
	}
	s.logger.Info("删除岗位", zap.String("job_id", job.JobID), zap.String("by", callerID))
	return nil
}

// ── 内部方法 ──

func (s *jobService) getJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}
	return job, nil
}

// getOwnedJob 岗位须属于调用者（管理员例外）
func (s *jobService) getOwnedJob(ctx context.Context, id, callerID, callerRole string) (*model.Job, error) {
	job, err := s.getJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckOwner(job.RecruiterID, callerID, callerRole); err != nil {
		return nil, ErrNotJobOwner
	}
	return job, nil
}

func checkStipend(job *model.Job) error {
	if job.StipendMax > 0 && job.StipendMin > job.StipendMax {
		return ErrJobStipendRange
	}
	return nil
}
