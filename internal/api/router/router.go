package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/api/handler"
	"placement-portal/backend/internal/api/middleware"
	"placement-portal/backend/pkg/jwt"
)

const (
	uploadPrefix = "/api/v1/upload"
	// multipart 封装的额外开销
	multipartOverhead = 1 << 20
)

// Deps 路由层依赖，Blacklist / Limiter 为 nil 时对应功能降级
type Deps struct {
	JWT       *jwt.Manager
	Blacklist middleware.TokenBlacklist
	Accounts  middleware.AccountChecker
	Limiter   middleware.WindowLimiter
	// UploadDir 非空时以 /uploads 对外提供本地存储的文件
	UploadDir string
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.SecurityHeaders(cfg.Auth.Cookie.Secure))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes, uploadPrefix))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	if deps.UploadDir != "" {
		r.Static("/uploads", deps.UploadDir)
	}

	auth := middleware.JWTAuth(deps.JWT, middleware.AuthOptions{
		CookieName: h.Auth.CookieName(),
		Blacklist:  deps.Blacklist,
		Accounts:   deps.Accounts,
	})
	loginLimit := cfg.RateLimit.LoginPerMinute
	if loginLimit <= 0 {
		loginLimit = 10
	}

	student := middleware.RoleAuth(access.RoleStudent)
	recruiterOrAdmin := middleware.RoleAuth(access.RoleRecruiter, access.RoleAdmin)
	reviewer := middleware.RoleAuth(access.RoleFaculty, access.RoleAdmin)
	staff := middleware.RoleAuth(access.RoleRecruiter, access.RoleFaculty, access.RoleAdmin)
	admin := middleware.RoleAuth(access.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", middleware.RateLimit(deps.Limiter, loginLimit, time.Minute), h.Auth.Register)
			authGroup.POST("/login", middleware.RateLimit(deps.Limiter, loginLimit, time.Minute), h.Auth.Login)
			authGroup.POST("/logout", auth, h.Auth.Logout)
			authGroup.GET("/me", auth, h.Auth.Me)
		}

		// 用户模块
		v1.GET("/users/me", auth, h.User.GetCurrentUser)

		// 学生档案
		profile := v1.Group("/student", auth)
		{
			profile.POST("/profile", student, h.Profile.CreateProfile)
			profile.GET("/profile/me", student, h.Profile.GetMyProfile)
			profile.PUT("/profile", student, h.Profile.UpdateProfile)
			profile.DELETE("/profile", student, h.Profile.DeleteProfile)
			profile.GET("/profiles", staff, h.Profile.ListProfiles)
			profile.GET("/profile/:id", staff, h.Profile.GetProfile)
		}

		// 岗位模块：列表与详情公开
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", h.Job.ListJobs)
			jobs.GET("/:id", h.Job.GetJob)
			jobs.GET("/recruiter/me", auth, middleware.RoleAuth(access.RoleRecruiter), h.Job.ListMyJobs)
			jobs.POST("", auth, recruiterOrAdmin, h.Job.CreateJob)
			jobs.PUT("/:id", auth, recruiterOrAdmin, h.Job.UpdateJob)
			jobs.PATCH("/:id/status", auth, recruiterOrAdmin, h.Job.UpdateJobStatus)
			jobs.DELETE("/:id", auth, recruiterOrAdmin, h.Job.DeleteJob)
			jobs.GET("/:id/applications", auth, recruiterOrAdmin, h.Job.ListJobApplications)
			jobs.POST("/:id/apply", auth, student, h.Job.Apply)
		}

		// 投递模块，所有者校验在 Service 层
		apps := v1.Group("/applications", auth)
		{
			apps.POST("", student, h.Application.Apply)
			apps.GET("/me", student, h.Application.ListMine)
			apps.GET("/:id", h.Application.Get)
			apps.DELETE("/:id", student, h.Application.Withdraw)
			apps.PATCH("/:id/stage", recruiterOrAdmin, h.Application.UpdateStage)
			apps.POST("/:id/notes", recruiterOrAdmin, h.Application.AddNote)
			apps.PATCH("/:id/interview", recruiterOrAdmin, h.Application.ScheduleInterview)
			apps.PATCH("/:id/scores", recruiterOrAdmin, h.Application.UpdateScores)
			apps.GET("/:id/interview.ics", h.Application.InterviewInvite)
		}

		// 管理端
		adminGroup := v1.Group("/admin", auth, admin)
		{
			adminGroup.GET("/stats", h.Admin.Stats)

			adminGroup.GET("/students", h.Admin.ListStudents)
			adminGroup.GET("/students/export", h.Export.ExportStudents)
			adminGroup.GET("/students/:userId", h.Admin.GetStudent)
			adminGroup.PATCH("/students/:userId/verify", h.Admin.VerifyStudent)
			adminGroup.PATCH("/students/:userId/verify-resume", h.Admin.VerifyResume)
			adminGroup.DELETE("/students/:userId", h.Admin.DeleteStudent)

			adminGroup.GET("/jobs", h.Job.ListAllJobs)
			adminGroup.POST("/jobs", h.Job.CreateJob)
			adminGroup.GET("/jobs/:id/applications", h.Job.ListJobApplications)

			adminGroup.GET("/users", h.User.ListUsers)
			adminGroup.POST("/users/faculty", h.User.CreateFaculty)
			adminGroup.PATCH("/users/:id/approve", h.User.ApproveRecruiter)
			adminGroup.PATCH("/users/:id/status", h.User.UpdateStatus)
		}

		// 院系
		departments := v1.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.GET("/:id", h.Department.GetDepartment)
			departments.POST("", auth, admin, h.Department.CreateDepartment)
			departments.PUT("/:id", auth, admin, h.Department.UpdateDepartment)
			departments.DELETE("/:id", auth, admin, h.Department.DeleteDepartment)
		}

		// 技能目录
		skills := v1.Group("/skills")
		{
			skills.GET("", h.Skill.ListSkills)
			skills.GET("/categories", h.Skill.ListCategories)
			skills.POST("", auth, admin, h.Skill.CreateSkill)
			skills.PUT("/:id", auth, admin, h.Skill.UpdateSkill)
			skills.DELETE("/:id", auth, admin, h.Skill.DeleteSkill)
		}

		// 认证材料
		verifications := v1.Group("/verifications", auth)
		{
			verifications.POST("", student, h.Verification.Submit)
			verifications.GET("/me", student, h.Verification.ListMine)
			verifications.GET("/queue", reviewer, h.Verification.Queue)
			verifications.GET("/:id", h.Verification.Get)
			verifications.PATCH("/:id", reviewer, h.Verification.Review)
		}

		// 文件上传，单独放宽请求体上限
		limits := cfg.Storage.Limits
		upload := v1.Group("/upload", auth)
		{
			upload.POST("/profile-picture", middleware.BodyLimit(limits.ImageBytes+multipartOverhead), h.Upload.ProfilePicture)
			upload.POST("/resume", middleware.BodyLimit(limits.ResumeBytes+multipartOverhead), h.Upload.Resume)
			upload.POST("/verification", middleware.BodyLimit(limits.DocumentBytes+multipartOverhead), h.Upload.VerificationDocument)
		}
	}

	return r
}
