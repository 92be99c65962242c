package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// ApplicationHandler 投递模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Apply 投递岗位
// POST /api/v1/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.JobID == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Apply(c.Request.Context(), studentID, &req)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.Created(c, gin.H{"application": app, "message": "投递成功"})
}

// ListMine 本人的投递
// GET /api/v1/applications/me
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	apps, total, err := h.appSvc.ListMine(c.Request.Context(), studentID, &req)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.OKPage(c, "applications", apps, total, req.GetPage(), req.GetPageSize())
}

// Get 投递详情
// GET /api/v1/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}
	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Get(c.Request.Context(), id, callerID, role)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"application": app})
}

// Withdraw 撤回投递，仅变更阶段
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Withdraw(c.Request.Context(), id, studentID)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"application": app, "message": "已撤回投递"})
}

// UpdateStage 推进投递阶段
// PATCH /api/v1/applications/:id/stage
func (h *ApplicationHandler) UpdateStage(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	app, err := h.appSvc.UpdateStage(c.Request.Context(), id, req.Stage, callerID, role)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"application": app})
}

// AddNote 添加评审备注
// POST /api/v1/applications/:id/notes
func (h *ApplicationHandler) AddNote(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	app, err := h.appSvc.AddNote(c.Request.Context(), id, &req, callerID, role)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.Created(c, gin.H{"application": app})
}

// ScheduleInterview 安排面试
// PATCH /api/v1/applications/:id/interview
func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	app, err := h.appSvc.ScheduleInterview(c.Request.Context(), id, &req, callerID, role)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"application": app})
}

// UpdateScores 更新评分
// PATCH /api/v1/applications/:id/scores
func (h *ApplicationHandler) UpdateScores(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	app, err := h.appSvc.UpdateScores(c.Request.Context(), id, &req, callerID, role)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"application": app})
}

// InterviewInvite 下载面试日历邀请
// GET /api/v1/applications/:id/interview.ics
func (h *ApplicationHandler) InterviewInvite(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}
	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	data, filename, err := h.appSvc.InterviewInvite(c.Request.Context(), id, callerID, role)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// handleApplicationError 投递相关错误映射，岗位路由下的投递接口共用
func handleApplicationError(c *gin.Context, err error) {
	var elig *service.EligibilityError
	switch {
	case errors.As(err, &elig):
		response.ErrorWithDetails(c, http.StatusForbidden, 15001, "不满足岗位投递条件", gin.H{"reasons": elig.Reasons})
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 15002, "投递记录不存在")
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, 14001, "岗位不存在")
	case errors.Is(err, service.ErrAlreadyApplied):
		response.Conflict(c, 15003, "已投递过该岗位")
	case errors.Is(err, service.ErrJobNotOpen):
		response.BadRequest(c, 15004, "岗位当前不接受投递")
	case errors.Is(err, service.ErrJobExpired):
		response.BadRequest(c, 15005, "岗位已过投递截止时间")
	case errors.Is(err, service.ErrResumeRequired):
		response.BadRequest(c, 15006, "请先上传简历或提供简历链接")
	case errors.Is(err, service.ErrNotEligible):
		response.Forbidden(c, 15001, "不满足岗位投递条件")
	case errors.Is(err, service.ErrNotApplicationParty), errors.Is(err, service.ErrNotJobOwner):
		response.Forbidden(c, 15007, "无权操作该投递记录")
	case errors.Is(err, service.ErrNotApplicant):
		response.Forbidden(c, 15008, "只能操作自己的投递")
	case errors.Is(err, service.ErrNoInterview):
		response.NotFound(c, 15009, "尚未安排面试")
	case errors.Is(err, service.ErrInvalidStage):
		response.BadRequest(c, 15010, "无效的投递阶段")
	case errors.Is(err, service.ErrStageTerminal):
		response.BadRequest(c, 15011, "投递已结束，无法变更阶段")
	case errors.Is(err, service.ErrStageTransition):
		response.BadRequest(c, 15012, "不允许的阶段变更")
	default:
		response.InternalError(c)
	}
}
