package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/api/handler"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// 只验证中间件链，请求不会到达 Service
func newTestEngine(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{BodyLimitBytes: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret: "router-test-secret-0123",
			TokenTTL:  time.Hour,
			Issuer:    "test",
		},
		Storage: config.StorageConfig{Limits: config.UploadLimits{
			ResumeBytes: 5 << 20, ImageBytes: 2 << 20, DocumentBytes: 10 << 20,
		}},
		RateLimit: config.RateLimitConfig{LoginPerMinute: 2},
	}
	mgr := jwt.NewManager(&cfg.Auth)
	h := handler.NewHandler(&service.Service{}, cfg.Auth.Cookie)
	return Setup(cfg, h, Deps{JWT: mgr}, zap.NewNop()), mgr
}

func do(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSetup_Health(t *testing.T) {
	r, _ := newTestEngine(t)

	w := do(r, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSetup_RequiresAuth(t *testing.T) {
	r, _ := newTestEngine(t)

	paths := []struct{ method, path string }{
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/users/me"},
		{"GET", "/api/v1/student/profile/me"},
		{"POST", "/api/v1/jobs"},
		{"GET", "/api/v1/applications/me"},
		{"GET", "/api/v1/admin/stats"},
		{"POST", "/api/v1/departments"},
		{"GET", "/api/v1/verifications/queue"},
		{"POST", "/api/v1/upload/resume"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(r, p.method, p.path, "").Code)
		})
	}
}

func TestSetup_RoleGates(t *testing.T) {
	r, mgr := newTestEngine(t)
	student, _, err := mgr.Issue("u-student", "s@example.com", "student")
	require.NoError(t, err)
	recruiter, _, err := mgr.Issue("u-recruiter", "r@example.com", "recruiter")
	require.NoError(t, err)

	tests := []struct {
		name, method, path, token string
	}{
		{"student on admin", "GET", "/api/v1/admin/stats", student},
		{"student creates job", "POST", "/api/v1/jobs", student},
		{"student lists profiles", "GET", "/api/v1/student/profiles", student},
		{"recruiter applies", "POST", "/api/v1/applications", recruiter},
		{"recruiter reviews verification", "GET", "/api/v1/verifications/queue", recruiter},
		{"student edits skills", "POST", "/api/v1/skills", student},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusForbidden, do(r, tt.method, tt.path, tt.token).Code)
		})
	}
}

func TestSetup_LoginRateLimited(t *testing.T) {
	r, _ := newTestEngine(t)

	// 空请求体在参数校验阶段返回 400，不会触达 Service
	assert.Equal(t, http.StatusBadRequest, do(r, "POST", "/api/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "POST", "/api/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "POST", "/api/v1/auth/login", "").Code)
}
