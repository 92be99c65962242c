package service

import (
	"go.uber.org/zap"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/repository"
	"placement-portal/backend/pkg/jwt"
	"placement-portal/backend/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Profile      ProfileService
	Job          JobService
	Application  ApplicationService
	Admin        AdminService
	Stats        StatsService
	Export       ExportService
	Department   DepartmentService
	Skill        SkillService
	Verification VerificationService
	Upload       UploadService
}

// NewService 创建 Service 聚合，blacklist 可为 nil
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	store storage.Storage,
	logger *zap.Logger,
) *Service {
	profiles := NewProfileService(repo, logger)
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, blacklist, logger),
		User:         NewUserService(repo, logger),
		Profile:      profiles,
		Job:          NewJobService(repo, logger),
		Application:  NewApplicationService(repo, logger),
		Admin:        NewAdminService(repo, profiles, logger),
		Stats:        NewStatsService(repo, logger),
		Export:       NewExportService(repo, logger),
		Department:   NewDepartmentService(repo, logger),
		Skill:        NewSkillService(repo, logger),
		Verification: NewVerificationService(repo, logger),
		Upload:       NewUploadService(repo, store, cfg.Storage.Limits, logger),
	}
}
