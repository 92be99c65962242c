package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/jwt"
	"placement-portal/backend/pkg/response"
)

// TokenBlacklist 令牌黑名单查询
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AccountChecker 校验令牌对应的账号仍然存在且处于启用状态
type AccountChecker interface {
	CheckAccount(ctx context.Context, userID string) error
}

// AuthOptions JWTAuth 的可选依赖，nil 表示跳过对应检查
type AuthOptions struct {
	CookieName string
	Blacklist  TokenBlacklist
	Accounts   AccountChecker
}

// JWTAuth JWT 认证中间件
// 依次从 Authorization: Bearer <token> 与 Cookie 中提取令牌
func JWTAuth(jwtMgr *jwt.Manager, opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c, opts.CookieName)
		if !ok {
			response.Unauthorized(c, 10002, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, err := jwtMgr.Verify(token)
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		if opts.Blacklist != nil {
			// Redis 出错时降级放行
			if revoked, err := opts.Blacklist.IsBlacklisted(ctx, claims.ID); err == nil && revoked {
				response.Unauthorized(c, 10002, "Token 已失效，请重新登录")
				c.Abort()
				return
			}
		}

		if opts.Accounts != nil {
			if err := opts.Accounts.CheckAccount(ctx, claims.UserID); err != nil {
				abortAccount(c, err)
				return
			}
		}

		// 将用户信息注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return strings.TrimSpace(parts[1]), true
		}
		return "", false
	}
	if cookieName == "" {
		return "", false
	}
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v, true
	}
	return "", false
}

func abortAccount(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "用户不存在")
	case errors.Is(err, service.ErrAccountPending):
		response.Forbidden(c, 10003, "账号待管理员审核")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, 10003, "账号已停用")
	default:
		response.InternalError(c)
	}
	c.Abort()
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		err := access.CheckRole(userRole, allowedRoles...)
		if err == nil {
			c.Next()
			return
		}

		var roleErr *access.RoleError
		if errors.As(err, &roleErr) {
			response.ErrorWithDetails(c, http.StatusForbidden, 10003, "无权限访问", gin.H{
				"required_roles": roleErr.RequiredNames(),
				"current_role":   userRole,
			})
		} else {
			response.Forbidden(c, 10003, "无权限访问")
		}
		c.Abort()
	}
}
