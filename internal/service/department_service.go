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

// ── 院系模块业务错误 ──

var (
	ErrDepartmentNotFound = errors.New("院系不存在")
	ErrDepartmentExists   = errors.New("院系名称或代码已存在")
)

// DepartmentService 院系业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	dept := &model.Department{
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: strings.TrimSpace(req.Description),
		Programs:    normalizeList(req.Programs, false),
		IsActive:    true,
		BaseModel:   model.BaseModel{CreatedBy: &callerID},
	}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrDepartmentExists
		}
		s.logger.Error("创建院系失败", zap.Error(err))
		return nil, err
	}
	resp := toDepartmentResponse(dept)
	return &resp, nil
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// List 缺省仅返回启用的院系；is_active=false 时返回全部
func (s *departmentService) List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error) {
	activeOnly := req.IsActive == nil || *req.IsActive
	depts, err := s.repo.Department.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("查询院系列表失败", zap.Error(err))
		return nil, err
	}
	list := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		list = append(list, toDepartmentResponse(&depts[i]))
	}
	return list, nil
}

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	dept, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	setTrimmed(&dept.Name, req.Name)
	setTrimmed(&dept.Description, req.Description)
	if req.Code != nil {
		dept.Code = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Programs != nil {
		dept.Programs = normalizeList(*req.Programs, false)
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrDepartmentExists
		}
		s.logger.Error("更新院系失败", zap.Error(err))
		return nil, err
	}
	resp := toDepartmentResponse(dept)
	return &resp, nil
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Department.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("删除院系失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *departmentService) get(ctx context.Context, id string) (*model.Department, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询院系失败", zap.Error(err))
		return nil, err
	}
	return dept, nil
}
