package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetCurrentUser 获取当前用户信息
// GET /api/v1/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

// ListUsers 用户列表（管理员）
// GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, "users", users, total, req.GetPage(), req.GetPageSize())
}

// CreateFaculty 创建教师账号
// POST /api/v1/admin/users/faculty
func (h *UserHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.CreateFaculty(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.Created(c, gin.H{"user": result.User, "temp_password": result.TempPassword})
}

// ApproveRecruiter 审核通过招聘方
// PATCH /api/v1/admin/users/:id/approve
func (h *UserHandler) ApproveRecruiter(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.ApproveRecruiter(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

// UpdateStatus 启用/停用账号
// PATCH /api/v1/admin/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.SetActive(c.Request.Context(), id, *req.IsActive, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 12002, "邮箱已被注册")
	case errors.Is(err, service.ErrUserSelfDeactivate):
		response.BadRequest(c, 12003, "不能停用自己的账号")
	case errors.Is(err, service.ErrNotRecruiter):
		response.BadRequest(c, 12004, "该用户不是招聘方")
	case errors.Is(err, service.ErrAlreadyApproved):
		response.Conflict(c, 12005, "该账号已审核通过")
	default:
		response.InternalError(c)
	}
}
