package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStudents 导出全部学生档案
// GET /api/v1/admin/students/export
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context())
	if err != nil {
		// ErrExportGenerateFail 同样按 500 处理
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxMime, buf.Bytes())
}
