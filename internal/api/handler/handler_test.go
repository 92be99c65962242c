package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/pkg/validate"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validate.Register(); err != nil {
		panic(err)
	}
}

const (
	testUserID = "0b6f3c1e-2d4a-4f7b-9c8e-1a2b3c4d5e6f"
	testID     = "5f1c1b0e-8a4e-4c1d-9a43-3c1f6b9d2a10"
)

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.UserResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	logoutErr      error
	logoutJTI      string
	meResult       *dto.UserResponse
	meErr          error
	checkErr       error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) CheckAccount(_ context.Context, _ string) error {
	return m.checkErr
}

// ── Mock UserService ──

type mockUserService struct {
	user    *dto.UserResponse
	list    []dto.UserResponse
	total   int64
	faculty *dto.CreateFacultyResponse
	err     error
}

func (m *mockUserService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.user, m.err
}
func (m *mockUserService) List(_ context.Context, _ *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockUserService) CreateFaculty(_ context.Context, _ *dto.CreateFacultyRequest, _ string) (*dto.CreateFacultyResponse, error) {
	return m.faculty, m.err
}
func (m *mockUserService) ApproveRecruiter(_ context.Context, _, _ string) (*dto.UserResponse, error) {
	return m.user, m.err
}
func (m *mockUserService) SetActive(_ context.Context, _ string, _ bool, _ string) (*dto.UserResponse, error) {
	return m.user, m.err
}

// ── Mock ProfileService ──

type mockProfileService struct {
	profile *dto.ProfileResponse
	list    []dto.ProfileResponse
	total   int64
	err     error
}

func (m *mockProfileService) Create(_ context.Context, _ string, _ *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	return m.profile, m.err
}
func (m *mockProfileService) GetMine(_ context.Context, _ string) (*dto.ProfileResponse, error) {
	return m.profile, m.err
}
func (m *mockProfileService) GetByID(_ context.Context, _ string) (*dto.ProfileResponse, error) {
	return m.profile, m.err
}
func (m *mockProfileService) Update(_ context.Context, _ string, _ *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	return m.profile, m.err
}
func (m *mockProfileService) Delete(_ context.Context, _ string) error {
	return m.err
}
func (m *mockProfileService) List(_ context.Context, _ *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error) {
	return m.list, m.total, m.err
}

// ── Mock JobService ──

type mockJobService struct {
	job   *dto.JobResponse
	list  []dto.JobResponse
	total int64
	err   error
	role  string
}

func (m *mockJobService) List(_ context.Context, _ *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockJobService) ListAll(_ context.Context, _ *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockJobService) ListByRecruiter(_ context.Context, _ string, _ *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockJobService) Get(_ context.Context, _ string) (*dto.JobResponse, error) {
	return m.job, m.err
}
func (m *mockJobService) Create(_ context.Context, _ *dto.CreateJobRequest, _ string) (*dto.JobResponse, error) {
	return m.job, m.err
}
func (m *mockJobService) Update(_ context.Context, _ string, _ *dto.UpdateJobRequest, _, role string) (*dto.JobResponse, error) {
	m.role = role
	return m.job, m.err
}
func (m *mockJobService) UpdateStatus(_ context.Context, _, _, _, role string) (*dto.JobResponse, error) {
	m.role = role
	return m.job, m.err
}
func (m *mockJobService) Delete(_ context.Context, _, _, role string) error {
	m.role = role
	return m.err
}

// ── Mock ApplicationService ──

type mockApplicationService struct {
	app      *dto.ApplicationResponse
	list     []dto.ApplicationResponse
	total    int64
	err      error
	applyReq *dto.ApplyRequest
	stage    string
	invite   []byte
	filename string
}

func (m *mockApplicationService) Apply(_ context.Context, _ string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	m.applyReq = req
	return m.app, m.err
}
func (m *mockApplicationService) ListMine(_ context.Context, _ string, _ *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockApplicationService) ListByJob(_ context.Context, _ string, _ *dto.ApplicationListRequest, _, _ string) ([]dto.ApplicationResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockApplicationService) Get(_ context.Context, _, _, _ string) (*dto.ApplicationResponse, error) {
	return m.app, m.err
}
func (m *mockApplicationService) UpdateStage(_ context.Context, _, stage, _, _ string) (*dto.ApplicationResponse, error) {
	m.stage = stage
	return m.app, m.err
}
func (m *mockApplicationService) Withdraw(_ context.Context, _, _ string) (*dto.ApplicationResponse, error) {
	return m.app, m.err
}
func (m *mockApplicationService) AddNote(_ context.Context, _ string, _ *dto.AddNoteRequest, _, _ string) (*dto.ApplicationResponse, error) {
	return m.app, m.err
}
func (m *mockApplicationService) ScheduleInterview(_ context.Context, _ string, _ *dto.ScheduleInterviewRequest, _, _ string) (*dto.ApplicationResponse, error) {
	return m.app, m.err
}
func (m *mockApplicationService) UpdateScores(_ context.Context, _ string, _ *dto.UpdateScoresRequest, _, _ string) (*dto.ApplicationResponse, error) {
	return m.app, m.err
}
func (m *mockApplicationService) InterviewInvite(_ context.Context, _, _, _ string) ([]byte, string, error) {
	return m.invite, m.filename, m.err
}

// ── Mock AdminService / StatsService / ExportService ──

type mockAdminService struct {
	profile  *dto.ProfileResponse
	detail   *dto.StudentDetailResponse
	deleted  *dto.DeleteStudentResult
	list     []dto.ProfileResponse
	total    int64
	err      error
	verified *bool
}

func (m *mockAdminService) ListStudents(_ context.Context, _ *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockAdminService) GetStudent(_ context.Context, _ string) (*dto.StudentDetailResponse, error) {
	return m.detail, m.err
}
func (m *mockAdminService) SetVerified(_ context.Context, _ string, verified bool, _ string) (*dto.ProfileResponse, error) {
	m.verified = &verified
	return m.profile, m.err
}
func (m *mockAdminService) SetResumeVerified(_ context.Context, _ string, verified bool, _ string) (*dto.ProfileResponse, error) {
	m.verified = &verified
	return m.profile, m.err
}
func (m *mockAdminService) DeleteStudent(_ context.Context, _, _ string) (*dto.DeleteStudentResult, error) {
	return m.deleted, m.err
}

type mockStatsService struct {
	stats *dto.DashboardStats
	err   error
}

func (m *mockStatsService) Dashboard(_ context.Context) (*dto.DashboardStats, error) {
	return m.stats, m.err
}

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportStudents(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock VerificationService ──

type mockVerificationService struct {
	v     *dto.VerificationResponse
	list  []dto.VerificationResponse
	total int64
	err   error
}

func (m *mockVerificationService) Submit(_ context.Context, _ string, _ *dto.SubmitVerificationRequest) (*dto.VerificationResponse, error) {
	return m.v, m.err
}
func (m *mockVerificationService) ListMine(_ context.Context, _ string) ([]dto.VerificationResponse, error) {
	return m.list, m.err
}
func (m *mockVerificationService) Queue(_ context.Context, _ *dto.VerificationQueueRequest) ([]dto.VerificationResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockVerificationService) Get(_ context.Context, _, _, _ string) (*dto.VerificationResponse, error) {
	return m.v, m.err
}
func (m *mockVerificationService) Review(_ context.Context, _ string, _ *dto.ReviewVerificationRequest, _ string) (*dto.VerificationResponse, error) {
	return m.v, m.err
}

// ── Mock UploadService ──

type mockUploadService struct {
	result *dto.UploadResponse
	err    error
	got    []byte
	size   int64
}

func (m *mockUploadService) record(r io.Reader, size int64) (*dto.UploadResponse, error) {
	m.got, _ = io.ReadAll(r)
	m.size = size
	return m.result, m.err
}
func (m *mockUploadService) ProfilePicture(_ context.Context, _ string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	return m.record(r, size)
}
func (m *mockUploadService) Resume(_ context.Context, _ string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	return m.record(r, size)
}
func (m *mockUploadService) VerificationDocument(_ context.Context, _ string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	return m.record(r, size)
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuthAs(c *gin.Context, role string) {
	c.Set("user_id", testUserID)
	c.Set("role", role)
	c.Set("token_jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

// withAuth 包装 handler，模拟 JWT 中间件已注入身份
func withAuth(role string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		setAuthAs(c, role)
		h(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// serve 注册单个路由并执行请求
func serve(method, pattern, target string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	r := gin.New()
	r.Handle(method, pattern, h)
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// errorCode 取错误响应中的业务码，无则返回 0
func errorCode(w *httptest.ResponseRecorder) int {
	code, _ := parseResponse(w)["code"].(float64)
	return int(code)
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status, code int) {
	t.Helper()
	if w.Code != status {
		t.Errorf("expected %d, got %d (body=%s)", status, w.Code, w.Body.String())
	}
	if code != 0 && errorCode(w) != code {
		t.Errorf("expected error code %d, got %d", code, errorCode(w))
	}
}
