package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// ProfileHandler 学生档案 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// CreateProfile 创建本人档案
// POST /api/v1/student/profile
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.Created(c, gin.H{"profile": profile})
}

// GetMyProfile 获取本人档案
// GET /api/v1/student/profile/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, gin.H{"profile": profile})
}

// UpdateProfile 部分更新本人档案
// PUT /api/v1/student/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, gin.H{"profile": profile})
}

// DeleteProfile 删除本人档案
// DELETE /api/v1/student/profile
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.profileSvc.Delete(c.Request.Context(), userID); err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.Message(c, "档案已删除")
}

// GetProfile 按档案 ID 或用户 ID 查看档案
// GET /api/v1/student/profile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, gin.H{"profile": profile})
}

// ListProfiles 检索学生档案
// GET /api/v1/student/profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	var req dto.ProfileListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	profiles, total, err := h.profileSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, "profiles", profiles, total, req.GetPage(), req.GetPageSize())
}

func (h *ProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 13001, "学生档案不存在")
	case errors.Is(err, service.ErrProfileExists):
		response.Conflict(c, 13002, "学生档案已存在，请使用更新接口")
	case errors.Is(err, service.ErrTooManySkills):
		response.BadRequest(c, 13003, "技能最多 20 项")
	default:
		response.InternalError(c)
	}
}
