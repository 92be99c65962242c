package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/repository"
	"placement-portal/backend/pkg/storage"
)

// 存储目录
const (
	folderProfilePictures = "profile-pictures"
	folderResumes         = "resumes"
	folderVerifications   = "verifications"
)

// UploadService 文件上传业务接口
// 类型以内容嗅探为准，超限或类型不符返回 storage 包的错误
type UploadService interface {
	ProfilePicture(ctx context.Context, userID string, r io.Reader, size int64) (*dto.UploadResponse, error)
	// Resume 上传简历；学生已有档案时同时更新档案上的简历链接
	Resume(ctx context.Context, userID string, r io.Reader, size int64) (*dto.UploadResponse, error)
	VerificationDocument(ctx context.Context, userID string, r io.Reader, size int64) (*dto.UploadResponse, error)
}

type uploadService struct {
	repo   *repository.Repository
	store  storage.Storage
	limits config.UploadLimits
	logger *zap.Logger
}

// NewUploadService 创建 UploadService 实例
func NewUploadService(repo *repository.Repository, store storage.Storage, limits config.UploadLimits, logger *zap.Logger) UploadService {
	return &uploadService{repo: repo, store: store, limits: limits, logger: logger}
}

func (s *uploadService) ProfilePicture(ctx context.Context, userID string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	obj, err := s.put(ctx, storage.ImagePolicy(s.limits.ImageBytes), folderProfilePictures, r, size)
	if err != nil {
		return nil, err
	}

	user.ProfilePicture = obj.URL
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("保存头像链接失败", zap.Error(err))
		s.discard(ctx, obj)
		return nil, err
	}
	return toUploadResponse(obj), nil
}

func (s *uploadService) Resume(ctx context.Context, userID string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	obj, err := s.put(ctx, storage.ResumePolicy(s.limits.ResumeBytes), folderResumes, r, size)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Profile.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 尚未建档，仅返回链接
	case err != nil:
		s.logger.Error("查询学生档案失败", zap.Error(err))
		s.discard(ctx, obj)
		return nil, err
	default:
		p.ResumeURL = obj.URL
		// 新简历需重新认证
		p.ResumeVerified = false
		if err := s.repo.Profile.Update(ctx, p); err != nil {
			s.logger.Error("保存简历链接失败", zap.Error(err))
			s.discard(ctx, obj)
			return nil, err
		}
	}
	return toUploadResponse(obj), nil
}

func (s *uploadService) VerificationDocument(ctx context.Context, userID string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	obj, err := s.put(ctx, storage.DocumentPolicy(s.limits.DocumentBytes), folderVerifications+"/"+userID, r, size)
	if err != nil {
		return nil, err
	}
	return toUploadResponse(obj), nil
}

func (s *uploadService) put(ctx context.Context, policy storage.Policy, folder string, r io.Reader, size int64) (*storage.Object, error) {
	checked, err := policy.Check(r, size)
	if err != nil {
		return nil, err
	}
	obj, err := s.store.Put(ctx, folder, checked.Ext, checked.Reader, checked.Size, checked.ContentType)
	if err != nil {
		s.logger.Error("写入存储失败", zap.String("policy", policy.Name), zap.Error(err))
		return nil, err
	}
	return obj, nil
}

// discard 数据库写入失败时回收已上传对象
func (s *uploadService) discard(ctx context.Context, obj *storage.Object) {
	if err := s.store.Delete(ctx, obj.Key); err != nil {
		s.logger.Warn("回收上传对象失败", zap.String("key", obj.Key), zap.Error(err))
	}
}

func toUploadResponse(obj *storage.Object) *dto.UploadResponse {
	return &dto.UploadResponse{URL: obj.URL, Size: obj.Size, ContentType: obj.ContentType}
}
