package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// AdminHandler 管理端学生与统计 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
	statsSvc service.StatsService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService, statsSvc service.StatsService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, statsSvc: statsSvc}
}

// Stats 仪表盘统计
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsSvc.Dashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"stats": stats})
}

// ListStudents 学生列表
// GET /api/v1/admin/students
func (h *AdminHandler) ListStudents(c *gin.Context) {
	var req dto.ProfileListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	students, total, err := h.adminSvc.ListStudents(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, "students", students, total, req.GetPage(), req.GetPageSize())
}

// GetStudent 学生详情，含投递与认证材料
// GET /api/v1/admin/students/:userId
func (h *AdminHandler) GetStudent(c *gin.Context) {
	userID, ok := MustParamID(c, "userId")
	if !ok {
		return
	}

	detail, err := h.adminSvc.GetStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, gin.H{"student": detail})
}

// VerifyStudent 设置档案认证状态
// PATCH /api/v1/admin/students/:userId/verify
func (h *AdminHandler) VerifyStudent(c *gin.Context) {
	h.setFlag(c, h.adminSvc.SetVerified)
}

// VerifyResume 设置简历认证状态
// PATCH /api/v1/admin/students/:userId/verify-resume
func (h *AdminHandler) VerifyResume(c *gin.Context) {
	h.setFlag(c, h.adminSvc.SetResumeVerified)
}

type flagSetter func(ctx context.Context, userID string, verified bool, callerID string) (*dto.ProfileResponse, error)

func (h *AdminHandler) setFlag(c *gin.Context, set flagSetter) {
	userID, ok := MustParamID(c, "userId")
	if !ok {
		return
	}

	var req dto.VerifyStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := set(c.Request.Context(), userID, *req.Verified, callerID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, gin.H{"profile": profile})
}

// DeleteStudent 级联删除学生
// DELETE /api/v1/admin/students/:userId
func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	userID, ok := MustParamID(c, "userId")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.adminSvc.DeleteStudent(c.Request.Context(), userID, callerID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "学生及相关数据已删除", "deleted": result})
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 16001, "学生不存在")
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 16002, "学生档案不存在")
	default:
		response.InternalError(c)
	}
}
