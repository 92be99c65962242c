package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
	pkgerrors "placement-portal/backend/pkg/errors"
)

// ── 档案模块业务错误 ──

var (
	ErrProfileNotFound = errors.New("学生档案不存在")
	ErrProfileExists   = errors.New("学生档案已存在")
	ErrTooManySkills   = errors.New("技能最多 20 项")
)

const maxSkills = 20

// ProfileService 学生档案业务接口
type ProfileService interface {
	Create(ctx context.Context, userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetMine(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	// GetByID id 可为档案 ID 或用户 ID
	GetByID(ctx context.Context, id string) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, req *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error)
}

type profileService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo *repository.Repository, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *profileService) Create(ctx context.Context, userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	skills := normalizeList(req.Skills, false)
	if len(skills) > maxSkills {
		return nil, ErrTooManySkills
	}

	p := &model.StudentProfile{
		UserID:         userID,
		Program:        strings.TrimSpace(req.Program),
		GraduationYear: req.GraduationYear,
		CGPA:           req.CGPA,
		Skills:         skills,
		Projects:       toProjects(req.Projects),
		ResumeURL:      strings.TrimSpace(req.ResumeURL),
		GitHubURL:      strings.TrimSpace(req.GitHubURL),
		LinkedInURL:    strings.TrimSpace(req.LinkedInURL),
		PortfolioURL:   strings.TrimSpace(req.PortfolioURL),
		Bio:            strings.TrimSpace(req.Bio),
	}
	if req.IsComplete != nil {
		p.IsComplete = *req.IsComplete
	}

	if err := s.repo.Profile.Create(ctx, p); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		s.logger.Error("创建学生档案失败", zap.Error(err))
		return nil, err
	}
	s.bumpSkillUsage(ctx, skills)

	return s.reload(ctx, p)
}

func (s *profileService) GetMine(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(p), nil
}

func (s *profileService) GetByID(ctx context.Context, id string) (*dto.ProfileResponse, error) {
	p, err := s.repo.Profile.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p, err = s.repo.Profile.GetByUserID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}
	return toProfileResponse(p), nil
}

// ────────────────────── Update ──────────────────────

func (s *profileService) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var added []string
	if req.Skills != nil {
		skills := normalizeList(*req.Skills, false)
		if len(skills) > maxSkills {
			return nil, ErrTooManySkills
		}
		added = newEntries(p.Skills, skills)
		p.Skills = skills
	}
	if req.Program != nil {
		p.Program = strings.TrimSpace(*req.Program)
	}
	if req.GraduationYear != nil {
		p.GraduationYear = req.GraduationYear
	}
	if req.CGPA != nil {
		p.CGPA = req.CGPA
	}
	if req.Projects != nil {
		p.Projects = toProjects(*req.Projects)
	}
	setTrimmed(&p.ResumeURL, req.ResumeURL)
	setTrimmed(&p.GitHubURL, req.GitHubURL)
	setTrimmed(&p.LinkedInURL, req.LinkedInURL)
	setTrimmed(&p.PortfolioURL, req.PortfolioURL)
	setTrimmed(&p.Bio, req.Bio)
	if req.IsComplete != nil {
		p.IsComplete = *req.IsComplete
	}

	if err := s.repo.Profile.Update(ctx, p); err != nil {
		s.logger.Error("更新学生档案失败", zap.Error(err))
		return nil, err
	}
	s.bumpSkillUsage(ctx, added)

	return toProfileResponse(p), nil
}

func (s *profileService) Delete(ctx context.Context, userID string) error {
	n, err := s.repo.Profile.DeleteByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("删除学生档案失败", zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *profileService) List(ctx context.Context, req *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error) {
	filters := &repository.ProfileListFilters{
		Skills:         splitCSV(req.Skills),
		GraduationYear: req.GraduationYear,
		MinCGPA:        req.MinCGPA,
		MaxCGPA:        req.MaxCGPA,
		Program:        strings.TrimSpace(req.Program),
		Department:     strings.TrimSpace(req.Department),
		Keyword:        strings.TrimSpace(req.Keyword),
		IsVerified:     req.IsVerified,
	}
	profiles, total, err := s.repo.Profile.List(ctx, filters, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询学生档案列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		list = append(list, *toProfileResponse(&profiles[i]))
	}
	return list, total, nil
}

// ── 内部方法 ──

func (s *profileService) getByUser(ctx context.Context, userID string) (*model.StudentProfile, error) {
	p, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// reload 重新读取以带出关联用户
func (s *profileService) reload(ctx context.Context, p *model.StudentProfile) (*dto.ProfileResponse, error) {
	loaded, err := s.repo.Profile.GetByUserID(ctx, p.UserID)
	if err != nil {
		s.logger.Warn("重新加载学生档案失败", zap.Error(err))
		return toProfileResponse(p), nil
	}
	return toProfileResponse(loaded), nil
}

// bumpSkillUsage 技能目录使用计数，失败不影响主流程
func (s *profileService) bumpSkillUsage(ctx context.Context, skills []string) {
	bumpSkillUsage(ctx, s.repo, s.logger, skills)
}

func bumpSkillUsage(ctx context.Context, repo *repository.Repository, logger *zap.Logger, skills []string) {
	names := normalizeList(skills, true)
	if len(names) == 0 {
		return
	}
	if err := repo.Skill.IncrementUsage(ctx, names); err != nil {
		logger.Warn("更新技能使用计数失败", zap.Error(err))
	}
}

// newEntries next 中不在 prev 里的元素（忽略大小写）
func newEntries(prev, next []string) []string {
	seen := make(map[string]struct{}, len(prev))
	for _, s := range prev {
		seen[strings.ToLower(s)] = struct{}{}
	}
	var out []string
	for _, s := range next {
		if _, ok := seen[strings.ToLower(s)]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
