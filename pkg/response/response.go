package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 失败响应结构
type ErrorBody struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Code    int         `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Pagination 分页元数据
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination 根据总数计算分页信息
func NewPagination(total int64, page, pageSize int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ── 成功响应 ──
// 成功时载荷字段平铺在顶层：{"success": true, "job": {...}}

func success(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK 200 成功响应
func OK(c *gin.Context, payload gin.H) {
	success(c, http.StatusOK, payload)
}

// Created 201 创建成功
func Created(c *gin.Context, payload gin.H) {
	success(c, http.StatusCreated, payload)
}

// OKPage 200 分页成功，列表放在 key 下
func OKPage(c *gin.Context, key string, list interface{}, total int64, page, pageSize int) {
	success(c, http.StatusOK, gin.H{
		key:          list,
		"pagination": NewPagination(total, page, pageSize),
	})
}

// Message 200 仅返回提示信息
func Message(c *gin.Context, message string) {
	success(c, http.StatusOK, gin.H{"message": message})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message, Code: code})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message string, details interface{}) {
	c.JSON(httpStatus, ErrorBody{Error: message, Code: code, Details: details})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError 500，不向客户端暴露内部细节
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "服务器内部错误")
}
