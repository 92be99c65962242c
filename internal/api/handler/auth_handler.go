package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/response"
)

// DefaultCookieName 未配置时使用的令牌 Cookie 名
const DefaultCookieName = "token"

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cookie  config.CookieConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cookie config.CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return &AuthHandler{authSvc: authSvc, cookie: cookie}
}

// CookieName 令牌 Cookie 名，鉴权中间件按此读取
func (h *AuthHandler) CookieName() string { return h.cookie.Name }

// Register 自助注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	msg := "注册成功"
	if user.ApprovalStatus == "pending" {
		msg = "注册成功，请等待管理员审核"
	}
	response.Created(c, gin.H{"user": user, "message": msg})
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setTokenCookie(c, result.Token, result.ExpiresIn)
	response.OK(c, gin.H{
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"user":       result.User,
	})
}

// Logout 用户登出，令牌加入黑名单直至过期
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp, ok := MustGetTokenMeta(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	h.setTokenCookie(c, "", -1)
	response.Message(c, "已退出登录")
}

// Me 获取当前用户
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

// setTokenCookie 写入 HttpOnly 令牌 Cookie，maxAge<0 表示清除
func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func sameSiteMode(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// handleAuthError 将 Service 层错误映射为 HTTP 响应
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "邮箱或密码错误")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 11002, "邮箱已被注册")
	case errors.Is(err, service.ErrRoleNotAllowed):
		response.Forbidden(c, 11003, "该角色不允许自助注册")
	case errors.Is(err, service.ErrAccountPending):
		response.Forbidden(c, 11004, "账号待管理员审核，审核通过后即可登录")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, 11005, "账号已停用，请联系管理员")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11006, "用户不存在")
	default:
		response.InternalError(c)
	}
}
