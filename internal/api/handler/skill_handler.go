package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// SkillHandler 技能目录 HTTP 处理器
type SkillHandler struct {
	skillSvc service.SkillService
}

// NewSkillHandler 创建 SkillHandler
func NewSkillHandler(skillSvc service.SkillService) *SkillHandler {
	return &SkillHandler{skillSvc: skillSvc}
}

// ListSkills 技能列表，按使用次数降序
// GET /api/v1/skills
func (h *SkillHandler) ListSkills(c *gin.Context) {
	var req dto.SkillListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	skills, err := h.skillSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"skills": skills})
}

// ListCategories 技能分类
// GET /api/v1/skills/categories
func (h *SkillHandler) ListCategories(c *gin.Context) {
	cats, err := h.skillSvc.Categories(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"categories": cats})
}

// CreateSkill 新增技能
// POST /api/v1/skills
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req dto.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	skill, err := h.skillSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSkillError(c, err)
		return
	}

	response.Created(c, gin.H{"skill": skill})
}

// UpdateSkill 更新技能
// PUT /api/v1/skills/:id
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	skill, err := h.skillSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSkillError(c, err)
		return
	}

	response.OK(c, gin.H{"skill": skill})
}

// DeleteSkill 删除技能
// DELETE /api/v1/skills/:id
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.skillSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSkillError(c, err)
		return
	}

	response.Message(c, "技能已删除")
}

func (h *SkillHandler) handleSkillError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSkillNotFound):
		response.NotFound(c, 18001, "技能不存在")
	case errors.Is(err, service.ErrSkillExists):
		response.Conflict(c, 18002, "技能已存在")
	default:
		response.InternalError(c)
	}
}
