package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
	pkgerrors "placement-portal/backend/pkg/errors"
)

// ── 投递模块业务错误 ──

var (
	ErrApplicationNotFound = errors.New("投递记录不存在")
	ErrAlreadyApplied      = errors.New("已投递过该岗位")
	ErrJobNotOpen          = errors.New("岗位当前不接受投递")
	ErrJobExpired          = errors.New("岗位已过投递截止时间")
	ErrResumeRequired      = errors.New("请先上传简历或提供简历链接")
	ErrNotEligible         = errors.New("不满足岗位投递条件")
	ErrNotApplicationParty = errors.New("无权查看该投递记录")
	ErrNotApplicant        = errors.New("只能操作自己的投递")
	ErrNoInterview         = errors.New("尚未安排面试")
)

// defaultInterviewMinutes 未指定时长时的面试时长
const defaultInterviewMinutes = 60

// EligibilityError 不满足投递条件，Reasons 列出具体原因
type EligibilityError struct {
	Reasons []string
}

func (e *EligibilityError) Error() string {
	return ErrNotEligible.Error() + ": " + strings.Join(e.Reasons, "; ")
}

// Is 使 errors.Is(err, ErrNotEligible) 成立
func (e *EligibilityError) Is(target error) bool { return target == ErrNotEligible }

// ApplicationService 投递业务接口
type ApplicationService interface {
	Apply(ctx context.Context, studentID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	ListMine(ctx context.Context, studentID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	// ListByJob 岗位所有者或管理员
	ListByJob(ctx context.Context, jobID string, req *dto.ApplicationListRequest, callerID, callerRole string) ([]dto.ApplicationResponse, int64, error)
	// Get 投递者本人、岗位所有者或管理员
	Get(ctx context.Context, id, callerID, callerRole string) (*dto.ApplicationResponse, error)
	UpdateStage(ctx context.Context, id, stage, callerID, callerRole string) (*dto.ApplicationResponse, error)
	Withdraw(ctx context.Context, id, studentID string) (*dto.ApplicationResponse, error)
	AddNote(ctx context.Context, id string, req *dto.AddNoteRequest, callerID, callerRole string) (*dto.ApplicationResponse, error)
	ScheduleInterview(ctx context.Context, id string, req *dto.ScheduleInterviewRequest, callerID, callerRole string) (*dto.ApplicationResponse, error)
	UpdateScores(ctx context.Context, id string, req *dto.UpdateScoresRequest, callerID, callerRole string) (*dto.ApplicationResponse, error)
	// InterviewInvite 生成面试 iCalendar 邀请，返回内容与建议文件名
	InterviewInvite(ctx context.Context, id, callerID, callerRole string) ([]byte, string, error)
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger}
}

// ────────────────────── Apply ──────────────────────

func (s *applicationService) Apply(ctx context.Context, studentID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	if job.Status != model.JobStatusActive {
		return nil, ErrJobNotOpen
	}
	if job.IsExpired(now) {
		return nil, ErrJobExpired
	}

	profile, err := s.repo.Profile.GetByUserID(ctx, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}
	if err := CheckEligibility(job, profile); err != nil {
		return nil, err
	}

	resume := strings.TrimSpace(req.ResumeURL)
	if resume == "" && profile != nil {
		resume = profile.ResumeURL
	}
	if resume == "" {
		return nil, ErrResumeRequired
	}

	app := &model.Application{
		JobID:       job.JobID,
		StudentID:   studentID,
		CoverLetter: strings.TrimSpace(req.CoverLetter),
		ResumeURL:   resume,
		Stage:       model.StageApplied,
		AppliedAt:   now,
	}
	// 唯一索引 (job_id, student_id) 兜底并发重复投递
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Application.Create(ctx, app); err != nil {
			return err
		}
		return tx.Job.IncrementApplicationCount(ctx, job.JobID, 1)
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		s.logger.Error("创建投递失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生投递", zap.String("application_id", app.ApplicationID),
		zap.String("job_id", job.JobID), zap.String("student_id", studentID))
	app.Job = job
	resp := toApplicationResponse(app)
	return &resp, nil
}

// CheckEligibility 校验学生是否满足岗位的 CGPA、专业、毕业年份限制；未设置的限制不校验
func CheckEligibility(job *model.Job, profile *model.StudentProfile) error {
	var reasons []string

	if job.MinCGPA > 0 {
		if profile == nil || profile.CGPA == nil || *profile.CGPA < job.MinCGPA {
			reasons = append(reasons, fmt.Sprintf("CGPA 需不低于 %.2f", job.MinCGPA))
		}
	}
	if len(job.AllowedPrograms) > 0 {
		ok := false
		if profile != nil {
			for _, p := range job.AllowedPrograms {
				if strings.EqualFold(strings.TrimSpace(p), strings.TrimSpace(profile.Program)) {
					ok = true
					break
				}
			}
		}
		if !ok {
			reasons = append(reasons, "专业不在岗位允许范围内")
		}
	}
	if len(job.GraduationYears) > 0 {
		if profile == nil || profile.GraduationYear == nil || !job.GraduationYears.Contains(*profile.GraduationYear) {
			reasons = append(reasons, "毕业年份不在岗位要求范围内")
		}
	}

	if len(reasons) > 0 {
		return &EligibilityError{Reasons: reasons}
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *applicationService) ListMine(ctx context.Context, studentID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	if req.Stage != "" && !ValidStage(req.Stage) {
		return nil, 0, ErrInvalidStage
	}
	apps, total, err := s.repo.Application.ListByStudent(ctx, studentID, req.Stage, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询投递列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toApplicationResponses(apps), total, nil
}

func (s *applicationService) ListByJob(ctx context.Context, jobID string, req *dto.ApplicationListRequest, callerID, callerRole string) ([]dto.ApplicationResponse, int64, error) {
	if req.Stage != "" && !ValidStage(req.Stage) {
		return nil, 0, ErrInvalidStage
	}
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrJobNotFound
		}
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, 0, err
	}
	if err := access.CheckOwner(job.RecruiterID, callerID, callerRole); err != nil {
		return nil, 0, ErrNotJobOwner
	}

	apps, total, err := s.repo.Application.ListByJob(ctx, jobID, req.Stage, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询岗位投递失败", zap.Error(err))
		return nil, 0, err
	}
	return toApplicationResponses(apps), total, nil
}

func (s *applicationService) Get(ctx context.Context, id, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.getApp(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isApplicationParty(app, callerID, callerRole) {
		return nil, ErrNotApplicationParty
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// ────────────────────── 阶段流转 ──────────────────────

func (s *applicationService) UpdateStage(ctx context.Context, id, stage, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.getManagedApp(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	if err := CheckStageTransition(app.Stage, stage, callerRole); err != nil {
		return nil, err
	}

	from := app.Stage
	app.Stage = stage
	app.UpdatedBy = &callerID
	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("更新投递阶段失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("投递阶段变更", zap.String("application_id", app.ApplicationID),
		zap.String("from", from), zap.String("to", stage))
	resp := toApplicationResponse(app)
	return &resp, nil
}

// Withdraw 撤回为阶段变更，记录保留
func (s *applicationService) Withdraw(ctx context.Context, id, studentID string) (*dto.ApplicationResponse, error) {
	app, err := s.getApp(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner(app.StudentID, studentID) {
		return nil, ErrNotApplicant
	}
	if err := CheckStageTransition(app.Stage, model.StageWithdrawn, string(access.RoleStudent)); err != nil {
		return nil, err
	}

	app.Stage = model.StageWithdrawn
	app.UpdatedBy = &studentID
	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("撤回投递失败", zap.Error(err))
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// ────────────────────── 评审 ──────────────────────

func (s *applicationService) AddNote(ctx context.Context, id string, req *dto.AddNoteRequest, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.getManagedApp(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	app.ReviewerNotes = append(app.ReviewerNotes, model.ReviewerNote{
		ReviewerID: callerID,
		Note:       strings.TrimSpace(req.Note),
		Rating:     req.Rating,
		CreatedAt:  time.Now().UTC(),
	})
	app.UpdatedBy = &callerID
	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("添加评审备注失败", zap.Error(err))
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

func (s *applicationService) UpdateScores(ctx context.Context, id string, req *dto.UpdateScoresRequest, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.getManagedApp(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	scores := app.Scores.Data()
	if req.Resume != nil {
		scores.Resume = req.Resume
	}
	if req.Interview != nil {
		scores.Interview = req.Interview
	}
	if req.Technical != nil {
		scores.Technical = req.Technical
	}
	if req.Overall != nil {
		scores.Overall = req.Overall
	}
	app.Scores = datatypes.NewJSONType(scores)
	app.UpdatedBy = &callerID
	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("更新评分失败", zap.Error(err))
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// ScheduleInterview 写入面试安排，尚未到面试阶段时推进到 interview-scheduled
func (s *applicationService) ScheduleInterview(ctx context.Context, id string, req *dto.ScheduleInterviewRequest, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.getManagedApp(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	if IsTerminalStage(app.Stage) {
		return nil, ErrStageTerminal
	}

	at := req.ScheduledAt.UTC()
	minutes := req.DurationMinutes
	if minutes == 0 {
		minutes = defaultInterviewMinutes
	}
	details := app.InterviewDetails.Data()
	details.ScheduledAt = &at
	details.DurationMinutes = minutes
	details.Location = strings.TrimSpace(req.Location)
	details.MeetingLink = strings.TrimSpace(req.MeetingLink)
	details.Interviewers = normalizeList(req.Interviewers, false)
	app.InterviewDetails = datatypes.NewJSONType(details)

	if stageOrder[app.Stage] < stageOrder[model.StageInterviewScheduled] {
		app.Stage = model.StageInterviewScheduled
	}
	app.UpdatedBy = &callerID
	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("安排面试失败", zap.Error(err))
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// ────────────────────── InterviewInvite ──────────────────────

func (s *applicationService) InterviewInvite(ctx context.Context, id, callerID, callerRole string) ([]byte, string, error) {
	app, err := s.getApp(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !isApplicationParty(app, callerID, callerRole) {
		return nil, "", ErrNotApplicationParty
	}
	details := app.InterviewDetails.Data()
	if details.ScheduledAt == nil {
		return nil, "", ErrNoInterview
	}

	return buildInterviewInvite(app, details, time.Now()), "interview-" + app.ApplicationID + ".ics", nil
}

func buildInterviewInvite(app *model.Application, d model.InterviewDetails, now time.Time) []byte {
	minutes := d.DurationMinutes
	if minutes <= 0 {
		minutes = defaultInterviewMinutes
	}
	start := d.ScheduledAt.UTC()

	summary := "面试"
	if app.Job != nil {
		summary = fmt.Sprintf("面试：%s - %s", app.Job.Title, app.Job.CompanyName)
	}
	location := d.Location
	if location == "" {
		location = d.MeetingLink
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//placement-portal//interview//ZH")

	event := cal.AddEvent(app.ApplicationID + "@placement-portal")
	event.SetDtStampTime(now.UTC())
	event.SetStartAt(start)
	event.SetEndAt(start.Add(time.Duration(minutes) * time.Minute))
	event.SetSummary(summary)
	if location != "" {
		event.SetLocation(location)
	}
	if d.MeetingLink != "" {
		event.SetURL(d.MeetingLink)
		event.SetDescription("会议链接: " + d.MeetingLink)
	}
	if app.Student != nil && app.Student.Email != "" {
		event.AddAttendee("mailto:"+app.Student.Email, ics.WithCN(app.Student.Name))
	}

	return []byte(cal.Serialize())
}

// ── 内部方法 ──

func (s *applicationService) getApp(ctx context.Context, id string) (*model.Application, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询投递记录失败", zap.Error(err))
		return nil, err
	}
	return app, nil
}

// getManagedApp 投递须属于调用者发布的岗位（管理员例外）
func (s *applicationService) getManagedApp(ctx context.Context, id, callerID, callerRole string) (*model.Application, error) {
	app, err := s.getApp(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := ""
	if app.Job != nil {
		owner = app.Job.RecruiterID
	}
	if !access.CanAccess(owner, callerID, callerRole) {
		return nil, ErrNotJobOwner
	}
	return app, nil
}

func isApplicationParty(app *model.Application, callerID, callerRole string) bool {
	if access.CanAccess(app.StudentID, callerID, callerRole) {
		return true
	}
	return app.Job != nil && access.IsOwner(app.Job.RecruiterID, callerID)
}
