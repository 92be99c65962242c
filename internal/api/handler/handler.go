package handler

import (
	"placement-portal/backend/config"
	"placement-portal/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Profile      *ProfileHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Admin        *AdminHandler
	Export       *ExportHandler
	Department   *DepartmentHandler
	Skill        *SkillHandler
	Verification *VerificationHandler
	Upload       *UploadHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, cookie config.CookieConfig) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, cookie),
		User:         NewUserHandler(svc.User),
		Profile:      NewProfileHandler(svc.Profile),
		Job:          NewJobHandler(svc.Job, svc.Application),
		Application:  NewApplicationHandler(svc.Application),
		Admin:        NewAdminHandler(svc.Admin, svc.Stats),
		Export:       NewExportHandler(svc.Export),
		Department:   NewDepartmentHandler(svc.Department),
		Skill:        NewSkillHandler(svc.Skill),
		Verification: NewVerificationHandler(svc.Verification),
		Upload:       NewUploadHandler(svc.Upload),
	}
}
