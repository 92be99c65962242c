package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
)

// ErrStudentNotFound 用户不存在或不是学生
var ErrStudentNotFound = errors.New("学生不存在")

// AdminService 管理端学生管理
type AdminService interface {
	ListStudents(ctx context.Context, req *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error)
	GetStudent(ctx context.Context, userID string) (*dto.StudentDetailResponse, error)
	// SetVerified 开启时写入认证时间，关闭时一并清空
	SetVerified(ctx context.Context, userID string, verified bool, callerID string) (*dto.ProfileResponse, error)
	SetResumeVerified(ctx context.Context, userID string, verified bool, callerID string) (*dto.ProfileResponse, error)
	// DeleteStudent 同一事务内删除投递、认证材料、档案与用户，并重算相关岗位的投递数
	DeleteStudent(ctx context.Context, userID, callerID string) (*dto.DeleteStudentResult, error)
}

type adminService struct {
	repo     *repository.Repository
	profiles ProfileService
	logger   *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, profiles ProfileService, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, profiles: profiles, logger: logger}
}

func (s *adminService) ListStudents(ctx context.Context, req *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error) {
	return s.profiles.List(ctx, req)
}

// ────────────────────── GetStudent ──────────────────────

func (s *adminService) GetStudent(ctx context.Context, userID string) (*dto.StudentDetailResponse, error) {
	user, err := s.getStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &dto.StudentDetailResponse{
		User:          toUserResponse(user),
		Applications:  []dto.ApplicationResponse{},
		Verifications: []dto.VerificationResponse{},
	}

	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		out.Profile = toProfileResponse(profile)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}

	apps, _, err := s.repo.Application.ListByStudent(ctx, userID, "", repository.Page{})
	if err != nil {
		s.logger.Error("查询学生投递失败", zap.Error(err))
		return nil, err
	}
	out.Applications = toApplicationResponses(apps)

	vs, err := s.repo.Verification.ListByStudent(ctx, userID)
	if err != nil {
		s.logger.Error("查询学生认证材料失败", zap.Error(err))
		return nil, err
	}
	now := time.Now()
	for i := range vs {
		out.Verifications = append(out.Verifications, toVerificationResponse(&vs[i], now))
	}
	return out, nil
}

// ────────────────────── 认证开关 ──────────────────────

func (s *adminService) SetVerified(ctx context.Context, userID string, verified bool, callerID string) (*dto.ProfileResponse, error) {
	return s.updateProfile(ctx, userID, callerID, func(p *model.StudentProfile) {
		p.IsVerified = verified
		if verified {
			now := time.Now().UTC()
			p.VerifiedAt = &now
		} else {
			p.VerifiedAt = nil
		}
	})
}

func (s *adminService) SetResumeVerified(ctx context.Context, userID string, verified bool, callerID string) (*dto.ProfileResponse, error) {
	return s.updateProfile(ctx, userID, callerID, func(p *model.StudentProfile) {
		p.ResumeVerified = verified
	})
}

func (s *adminService) updateProfile(ctx context.Context, userID, callerID string, mutate func(p *model.StudentProfile)) (*dto.ProfileResponse, error) {
	p, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}

	mutate(p)
	p.UpdatedBy = &callerID
	if err := s.repo.Profile.Update(ctx, p); err != nil {
		s.logger.Error("更新学生认证状态失败", zap.Error(err))
		return nil, err
	}
	return toProfileResponse(p), nil
}

// ────────────────────── DeleteStudent ──────────────────────

func (s *adminService) DeleteStudent(ctx context.Context, userID, callerID string) (*dto.DeleteStudentResult, error) {
	if _, err := s.getStudent(ctx, userID); err != nil {
		return nil, err
	}

	result := &dto.DeleteStudentResult{}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		jobIDs, err := tx.Application.ListJobIDsByStudent(ctx, userID)
		if err != nil {
			return err
		}
		if result.ApplicationsDeleted, err = tx.Application.DeleteByStudent(ctx, userID); err != nil {
			return err
		}
		if err := tx.Job.RecomputeApplicationCounts(ctx, jobIDs); err != nil {
			return err
		}
		if result.VerificationsDeleted, err = tx.Verification.DeleteByStudent(ctx, userID); err != nil {
			return err
		}
		n, err := tx.Profile.DeleteByUserID(ctx, userID)
		if err != nil {
			return err
		}
		result.ProfileDeleted = n > 0
		return tx.User.Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("删除学生失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("删除学生", zap.String("user_id", userID), zap.String("by", callerID),
		zap.Int64("applications", result.ApplicationsDeleted))
	return result, nil
}

func (s *adminService) getStudent(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if user.Role != string(access.RoleStudent) {
		return nil, ErrStudentNotFound
	}
	return user, nil
}
