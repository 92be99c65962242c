package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
	pkgerrors "placement-portal/backend/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrUserSelfDeactivate = errors.New("不能停用自己的账号")
	ErrNotRecruiter       = errors.New("该用户不是招聘方")
	ErrAlreadyApproved    = errors.New("该账号已审核通过")
)

// UserService 用户业务接口
type UserService interface {
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest, callerID string) (*dto.CreateFacultyResponse, error)
	ApproveRecruiter(ctx context.Context, id, callerID string) (*dto.UserResponse, error)
	SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		Role:     req.Role,
		IsActive: req.IsActive,
		Keyword:  strings.TrimSpace(req.Keyword),
	}
	users, total, err := s.repo.User.List(ctx, filters, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, toUserResponse(&users[i]))
	}
	return list, total, nil
}

// ────────────────────── CreateFaculty ──────────────────────

func (s *userService) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest, callerID string) (*dto.CreateFacultyResponse, error) {
	tempPwd, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPwd), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:               strings.TrimSpace(req.Name),
		Email:              normalizeEmail(req.Email),
		PasswordHash:       string(hash),
		Role:               string(access.RoleFaculty),
		Department:         strings.TrimSpace(req.Department),
		IsActive:           true,
		ApprovalStatus:     model.ApprovalApproved,
		MustChangePassword: true,
		BaseModel:          model.BaseModel{CreatedBy: &callerID},
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建教师账号失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建教师账号", zap.String("user_id", user.UserID), zap.String("by", callerID))
	return &dto.CreateFacultyResponse{
		User:         toUserResponse(user),
		TempPassword: tempPwd,
	}, nil
}

// ────────────────────── ApproveRecruiter ──────────────────────

func (s *userService) ApproveRecruiter(ctx context.Context, id, callerID string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != string(access.RoleRecruiter) {
		return nil, ErrNotRecruiter
	}
	if user.ApprovalStatus == model.ApprovalApproved && user.IsActive {
		return nil, ErrAlreadyApproved
	}

	user.ApprovalStatus = model.ApprovalApproved
	user.IsActive = true
	user.UpdatedBy = &callerID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("审核招聘方失败", zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── SetActive ──────────────────────

func (s *userService) SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.UserResponse, error) {
	if !active && access.SameID(id, callerID) {
		return nil, ErrUserSelfDeactivate
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if active {
		user.ApprovalStatus = model.ApprovalApproved
	}
	user.UpdatedBy = &callerID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新账号状态失败", zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// generateTempPassword 生成含字母和数字的随机临时密码
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 8
	}

	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	result := make([]byte, length)
	var err error
	if result[0], err = pick(letters); err != nil {
		return "", err
	}
	if result[1], err = pick(digits); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if result[i], err = pick(all); err != nil {
			return "", err
		}
	}

	// Fisher-Yates 洗牌
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}
	return string(result), nil
}
