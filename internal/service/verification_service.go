package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
)

// ── 认证模块业务错误 ──

var (
	ErrVerificationNotFound = errors.New("认证记录不存在")
	ErrVerificationReviewed = errors.New("该材料已审核")
	ErrNotVerificationParty = errors.New("无权查看该认证记录")
)

// VerificationService 材料认证业务接口
type VerificationService interface {
	Submit(ctx context.Context, studentID string, req *dto.SubmitVerificationRequest) (*dto.VerificationResponse, error)
	ListMine(ctx context.Context, studentID string) ([]dto.VerificationResponse, error)
	Queue(ctx context.Context, req *dto.VerificationQueueRequest) ([]dto.VerificationResponse, int64, error)
	// Get 提交者本人、教师或管理员
	Get(ctx context.Context, id, callerID, callerRole string) (*dto.VerificationResponse, error)
	// Review 审核待审材料，并同步档案上对应的认证标记
	Review(ctx context.Context, id string, req *dto.ReviewVerificationRequest, reviewerID string) (*dto.VerificationResponse, error)
}

type verificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVerificationService 创建 VerificationService 实例
func NewVerificationService(repo *repository.Repository, logger *zap.Logger) VerificationService {
	return &verificationService{repo: repo, logger: logger}
}

func (s *verificationService) Submit(ctx context.Context, studentID string, req *dto.SubmitVerificationRequest) (*dto.VerificationResponse, error) {
	v := &model.Verification{
		StudentID:    studentID,
		DocumentType: req.DocumentType,
		DocumentName: strings.TrimSpace(req.DocumentName),
		DocumentURL:  strings.TrimSpace(req.DocumentURL),
		Status:       model.VerificationPending,
		SubmittedAt:  time.Now().UTC(),
		Metadata: datatypes.NewJSONType(model.VerificationMetadata{
			FileSize:     req.FileSize,
			FileType:     req.FileType,
			UploadedFrom: "web",
		}),
	}
	if err := s.repo.Verification.Create(ctx, v); err != nil {
		s.logger.Error("提交认证材料失败", zap.Error(err))
		return nil, err
	}
	resp := toVerificationResponse(v, time.Now())
	return &resp, nil
}

func (s *verificationService) ListMine(ctx context.Context, studentID string) ([]dto.VerificationResponse, error) {
	vs, err := s.repo.Verification.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询认证记录失败", zap.Error(err))
		return nil, err
	}
	now := time.Now()
	list := make([]dto.VerificationResponse, 0, len(vs))
	for i := range vs {
		list = append(list, toVerificationResponse(&vs[i], now))
	}
	return list, nil
}

func (s *verificationService) Queue(ctx context.Context, req *dto.VerificationQueueRequest) ([]dto.VerificationResponse, int64, error) {
	vs, total, err := s.repo.Verification.ListQueue(ctx, &repository.VerificationQueueFilters{
		Status:       req.Status,
		DocumentType: req.DocumentType,
	}, repository.Page{Offset: req.GetOffset(), Limit: req.GetPageSize()})
	if err != nil {
		s.logger.Error("查询审核队列失败", zap.Error(err))
		return nil, 0, err
	}
	now := time.Now()
	list := make([]dto.VerificationResponse, 0, len(vs))
	for i := range vs {
		list = append(list, toVerificationResponse(&vs[i], now))
	}
	return list, total, nil
}

func (s *verificationService) Get(ctx context.Context, id, callerID, callerRole string) (*dto.VerificationResponse, error) {
	v, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.HasRole(callerRole, access.RoleFaculty) && !access.CanAccess(v.StudentID, callerID, callerRole) {
		return nil, ErrNotVerificationParty
	}
	resp := toVerificationResponse(v, time.Now())
	return &resp, nil
}

// ────────────────────── Review ──────────────────────

func (s *verificationService) Review(ctx context.Context, id string, req *dto.ReviewVerificationRequest, reviewerID string) (*dto.VerificationResponse, error) {
	v, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status != model.VerificationPending {
		return nil, ErrVerificationReviewed
	}

	now := time.Now().UTC()
	v.Status = req.Status
	v.Remarks = strings.TrimSpace(req.Remarks)
	v.ReviewedBy = &reviewerID
	v.ReviewedAt = &now

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Verification.Update(ctx, v); err != nil {
			return err
		}
		return syncProfileFlag(ctx, tx, v)
	})
	if err != nil {
		s.logger.Error("审核认证材料失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("认证材料审核", zap.String("verification_id", v.VerificationID),
		zap.String("status", v.Status), zap.String("reviewer", reviewerID))
	resp := toVerificationResponse(v, time.Now())
	return &resp, nil
}

// syncProfileFlag resume / transcript / id-proof 的审核结果写回档案；学生尚无档案时跳过
func syncProfileFlag(ctx context.Context, tx *repository.Repository, v *model.Verification) error {
	var flag func(p *model.StudentProfile) *bool
	switch v.DocumentType {
	case model.DocResume:
		flag = func(p *model.StudentProfile) *bool { return &p.ResumeVerified }
	case model.DocTranscript:
		flag = func(p *model.StudentProfile) *bool { return &p.AcademicVerified }
	case model.DocIDProof:
		flag = func(p *model.StudentProfile) *bool { return &p.IdentityVerified }
	default:
		return nil
	}

	p, err := tx.Profile.GetByUserID(ctx, v.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	*flag(p) = v.Status == model.VerificationApproved
	return tx.Profile.Update(ctx, p)
}

func (s *verificationService) get(ctx context.Context, id string) (*model.Verification, error) {
	v, err := s.repo.Verification.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		s.logger.Error("查询认证记录失败", zap.Error(err))
		return nil, err
	}
	return v, nil
}
