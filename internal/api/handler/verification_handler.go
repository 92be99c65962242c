package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// VerificationHandler 认证材料 HTTP 处理器
type VerificationHandler struct {
	verifySvc service.VerificationService
}

// NewVerificationHandler 创建 VerificationHandler
func NewVerificationHandler(verifySvc service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifySvc: verifySvc}
}

// Submit 学生提交认证材料
// POST /api/v1/verifications
func (h *VerificationHandler) Submit(c *gin.Context) {
	var req dto.SubmitVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	v, err := h.verifySvc.Submit(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleVerificationError(c, err)
		return
	}

	response.Created(c, gin.H{"verification": v})
}

// ListMine 本人提交的材料
// GET /api/v1/verifications/me
func (h *VerificationHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.verifySvc.ListMine(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"verifications": list})
}

// Queue 待审队列，最早提交的在前
// GET /api/v1/verifications/queue
func (h *VerificationHandler) Queue(c *gin.Context) {
	var req dto.VerificationQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.verifySvc.Queue(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, "verifications", list, total, req.GetPage(), req.GetPageSize())
}

// Get 材料详情
// GET /api/v1/verifications/:id
func (h *VerificationHandler) Get(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}
	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	v, err := h.verifySvc.Get(c.Request.Context(), id, callerID, role)
	if err != nil {
		h.handleVerificationError(c, err)
		return
	}

	response.OK(c, gin.H{"verification": v})
}

// Review 审核材料
// PATCH /api/v1/verifications/:id
func (h *VerificationHandler) Review(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	v, err := h.verifySvc.Review(c.Request.Context(), id, &req, reviewerID)
	if err != nil {
		h.handleVerificationError(c, err)
		return
	}

	response.OK(c, gin.H{"verification": v})
}

func (h *VerificationHandler) handleVerificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVerificationNotFound):
		response.NotFound(c, 19001, "认证记录不存在")
	case errors.Is(err, service.ErrVerificationReviewed):
		response.BadRequest(c, 19002, "该材料已审核")
	case errors.Is(err, service.ErrNotVerificationParty):
		response.Forbidden(c, 19003, "无权查看该认证记录")
	default:
		response.InternalError(c)
	}
}
