package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
	pkgerrors "placement-portal/backend/pkg/errors"
	"placement-portal/backend/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrRoleNotAllowed     = errors.New("该角色不允许自助注册")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrAccountPending     = errors.New("账号待管理员审核")
)

// TokenBlacklist 注销令牌存储，*redis.Client 实现该接口
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout 将 jti 拉黑至令牌过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	// CheckAccount 鉴权中间件使用：用户须存在且处于启用状态
	CheckAccount(ctx context.Context, userID string) error
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例，blacklist 可为 nil（未启用 Redis）
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := access.RoleStudent
	if req.Role != "" {
		role = access.Role(req.Role)
	}
	if !access.HasRole(string(role), access.RoleStudent, access.RoleRecruiter) {
		return nil, ErrRoleNotAllowed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          normalizeEmail(req.Email),
		PasswordHash:   string(hash),
		Role:           string(role),
		Department:     strings.TrimSpace(req.Department),
		IsActive:       true,
		ApprovalStatus: model.ApprovalApproved,
	}
	// 招聘方需管理员审核后启用
	if role == access.RoleRecruiter {
		user.IsActive = false
		user.ApprovalStatus = model.ApprovalPending
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户注册", zap.String("user_id", user.UserID), zap.String("role", user.Role))
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := accountState(user); err != nil {
		return nil, err
	}

	token, _, err := s.jwtMgr.Issue(user.UserID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	if err := s.repo.User.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		// 不影响登录结果
		s.logger.Warn("更新最后登录时间失败", zap.String("user_id", user.UserID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("令牌拉黑失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) CheckAccount(ctx context.Context, userID string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return accountState(user)
}

// accountState 停用账号区分"待审核"与"已停用"
func accountState(u *model.User) error {
	if u.IsActive {
		return nil
	}
	if u.ApprovalStatus == model.ApprovalPending {
		return ErrAccountPending
	}
	return ErrAccountDisabled
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
