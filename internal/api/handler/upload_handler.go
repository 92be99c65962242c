package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
	"placement-portal/backend/pkg/storage"
)

// UploadHandler 文件上传 HTTP 处理器
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

type uploadFunc func(ctx context.Context, userID string, r io.Reader, size int64) (*dto.UploadResponse, error)

// ProfilePicture 上传头像
// POST /api/v1/upload/profile-picture
func (h *UploadHandler) ProfilePicture(c *gin.Context) {
	h.upload(c, "profilePicture", h.uploadSvc.ProfilePicture, "头像上传成功")
}

// Resume 上传简历
// POST /api/v1/upload/resume
func (h *UploadHandler) Resume(c *gin.Context) {
	h.upload(c, "resume", h.uploadSvc.Resume, "简历上传成功")
}

// VerificationDocument 上传认证材料
// POST /api/v1/upload/verification
func (h *UploadHandler) VerificationDocument(c *gin.Context) {
	h.upload(c, "document", h.uploadSvc.VerificationDocument, "材料上传成功")
}

func (h *UploadHandler) upload(c *gin.Context, field string, fn uploadFunc, msg string) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile(field)
	if err != nil {
		response.BadRequest(c, 20001, "请选择要上传的文件（字段 "+field+"）")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	result, err := fn(c.Request.Context(), userID, f, fh.Size)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, gin.H{"file": result, "url": result.URL, "message": msg})
}

func (h *UploadHandler) handleUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(c, 20002, "上传文件为空")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(c, 20003, "文件超过大小限制")
	case errors.Is(err, storage.ErrFileType):
		response.BadRequest(c, 20004, "不支持的文件类型")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20005, "用户不存在")
	default:
		response.InternalError(c)
	}
}
