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

var (
	ErrSkillNotFound = errors.New("技能不存在")
	ErrSkillExists   = errors.New("技能已存在")
)

// SkillService 技能目录业务接口
type SkillService interface {
	List(ctx context.Context, req *dto.SkillListRequest) ([]dto.SkillResponse, error)
	Categories(ctx context.Context) ([]dto.SkillCategoryResponse, error)
	Create(ctx context.Context, req *dto.CreateSkillRequest) (*dto.SkillResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSkillRequest) (*dto.SkillResponse, error)
	Delete(ctx context.Context, id string) error
}

type skillService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSkillService 创建 SkillService 实例
func NewSkillService(repo *repository.Repository, logger *zap.Logger) SkillService {
	return &skillService{repo: repo, logger: logger}
}

func (s *skillService) List(ctx context.Context, req *dto.SkillListRequest) ([]dto.SkillResponse, error) {
	filters := &repository.SkillListFilters{
		Category:   req.Category,
		Keyword:    strings.TrimSpace(req.Search),
		ActiveOnly: req.Active == nil || *req.Active,
	}
	skills, err := s.repo.Skill.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询技能列表失败", zap.Error(err))
		return nil, err
	}
	list := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		list = append(list, toSkillResponse(&skills[i]))
	}
	return list, nil
}

func (s *skillService) Categories(ctx context.Context) ([]dto.SkillCategoryResponse, error) {
	cats, err := s.repo.Skill.Categories(ctx)
	if err != nil {
		s.logger.Error("查询技能分类失败", zap.Error(err))
		return nil, err
	}
	list := make([]dto.SkillCategoryResponse, 0, len(cats))
	for _, c := range cats {
		list = append(list, dto.SkillCategoryResponse{Category: c.Category, Count: c.Count})
	}
	return list, nil
}

func (s *skillService) Create(ctx context.Context, req *dto.CreateSkillRequest) (*dto.SkillResponse, error) {
	category := req.Category
	if category == "" {
		category = "other"
	}
	skill := &model.Skill{
		Name:     strings.ToLower(strings.TrimSpace(req.Name)),
		Category: category,
		IsActive: true,
	}
	if err := s.repo.Skill.Create(ctx, skill); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrSkillExists
		}
		s.logger.Error("创建技能失败", zap.Error(err))
		return nil, err
	}
	resp := toSkillResponse(skill)
	return &resp, nil
}

func (s *skillService) Update(ctx context.Context, id string, req *dto.UpdateSkillRequest) (*dto.SkillResponse, error) {
	skill, err := s.repo.Skill.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		s.logger.Error("查询技能失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		skill.Name = strings.ToLower(strings.TrimSpace(*req.Name))
	}
	if req.Category != nil {
		skill.Category = *req.Category
	}
	if req.IsActive != nil {
		skill.IsActive = *req.IsActive
	}
	if err := s.repo.Skill.Update(ctx, skill); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrSkillExists
		}
		s.logger.Error("更新技能失败", zap.Error(err))
		return nil, err
	}
	resp := toSkillResponse(skill)
	return &resp, nil
}

func (s *skillService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Skill.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		s.logger.Error("删除技能失败", zap.Error(err))
		return err
	}
	return nil
}
