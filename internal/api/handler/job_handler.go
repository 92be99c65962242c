package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// JobHandler 岗位模块 HTTP 处理器
type JobHandler struct {
	jobSvc service.JobService
	appSvc service.ApplicationService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(jobSvc service.JobService, appSvc service.ApplicationService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc, appSvc: appSvc}
}

// ListJobs 公开岗位列表
// GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	jobs, total, err := h.jobSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, "jobs", jobs, total, req.GetPage(), req.GetPageSize())
}

// ListAllJobs 管理端岗位列表，默认不限状态
// GET /api/v1/admin/jobs
func (h *JobHandler) ListAllJobs(c *gin.Context) {
	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	jobs, total, err := h.jobSvc.ListAll(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, "jobs", jobs, total, req.GetPage(), req.GetPageSize())
}

// ListMyJobs 招聘方本人发布的岗位
// GET /api/v1/jobs/recruiter/me
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	jobs, total, err := h.jobSvc.ListByRecruiter(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, "jobs", jobs, total, req.GetPage(), req.GetPageSize())
}

// GetJob 岗位详情
// GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, gin.H{"job": job})
}

// CreateJob 发布岗位
// POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	job, err := h.jobSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.Created(c, gin.H{"job": job})
}

// UpdateJob 更新岗位
// PUT /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	job, err := h.jobSvc.Update(c.Request.Context(), id, &req, callerID, role)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, gin.H{"job": job})
}

// UpdateJobStatus 变更岗位状态
// PATCH /api/v1/jobs/:id/status
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	job, err := h.jobSvc.UpdateStatus(c.Request.Context(), id, req.Status, callerID, role)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, gin.H{"job": job})
}

// DeleteJob 删除岗位
// DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.jobSvc.Delete(c.Request.Context(), id, callerID, role); err != nil {
		h.handleJobError(c, err)
		return
	}

	response.Message(c, "岗位已删除")
}

// ListJobApplications 岗位的投递列表
// GET /api/v1/jobs/:id/applications
func (h *JobHandler) ListJobApplications(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	apps, total, err := h.appSvc.ListByJob(c.Request.Context(), id, &req, callerID, role)
	if err != nil {
		handleApplicationError(c, err)
		return
	}

	response.OKPage(c, "applications", apps, total, req.GetPage(), req.GetPageSize())
}

// Apply 通过岗位路径投递
// POST /api/v1/jobs/:id/apply
func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
	}
	req.JobID = id

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

func (h *JobHandler) handleJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, 14001, "岗位不存在")
	case errors.Is(err, service.ErrNotJobOwner):
		response.Forbidden(c, 14002, "无权操作该岗位")
	case errors.Is(err, service.ErrJobHasApplications):
		response.BadRequest(c, 14003, "岗位已有投递记录，无法删除，可将其关闭")
	case errors.Is(err, service.ErrJobCompanyRequired):
		response.BadRequest(c, 14004, "公司名称不能为空")
	case errors.Is(err, service.ErrJobStipendRange):
		response.BadRequest(c, 14005, "薪资下限不能高于上限")
	case errors.Is(err, service.ErrJobDeadlinePast):
		response.BadRequest(c, 14006, "截止时间必须晚于当前时间")
	default:
		response.InternalError(c)
	}
}
