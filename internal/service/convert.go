package service

import (
	"strings"
	"time"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
)

const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// ── 用户 ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 u.UserID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Department:         u.Department,
		IsActive:           u.IsActive,
		ApprovalStatus:     u.ApprovalStatus,
		ProfilePicture:     u.ProfilePicture,
		MustChangePassword: u.MustChangePassword,
		LastLoginAt:        formatTimePtr(u.LastLoginAt),
		CreatedAt:          formatTime(u.CreatedAt),
	}
}

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:             u.UserID,
		Name:           u.Name,
		Email:          u.Email,
		Department:     u.Department,
		ProfilePicture: u.ProfilePicture,
	}
}

// ── 档案 ──

func toProfileResponse(p *model.StudentProfile) *dto.ProfileResponse {
	projects := make([]dto.ProjectResponse, 0, len(p.Projects))
	for _, pr := range p.Projects {
		projects = append(projects, dto.ProjectResponse{
			Title:        pr.Title,
			Description:  pr.Description,
			Technologies: pr.Technologies,
			URL:          pr.URL,
			StartDate:    formatTimePtr(pr.StartDate),
			EndDate:      formatTimePtr(pr.EndDate),
		})
	}
	skills := []string(p.Skills)
	if skills == nil {
		skills = []string{}
	}

	c := ProfileCompletion(p)
	return &dto.ProfileResponse{
		ID:                   p.ProfileID,
		UserID:               p.UserID,
		Program:              p.Program,
		GraduationYear:       p.GraduationYear,
		CGPA:                 p.CGPA,
		Skills:               skills,
		Projects:             projects,
		ResumeURL:            p.ResumeURL,
		GitHubURL:            p.GitHubURL,
		LinkedInURL:          p.LinkedInURL,
		PortfolioURL:         p.PortfolioURL,
		Bio:                  p.Bio,
		ResumeVerified:       p.ResumeVerified,
		AcademicVerified:     p.AcademicVerified,
		IdentityVerified:     p.IdentityVerified,
		IsVerified:           p.IsVerified,
		VerifiedAt:           formatTimePtr(p.VerifiedAt),
		IsComplete:           c.IsComplete,
		CompletionPercentage: c.Percentage,
		User:                 toUserBrief(p.User),
		CreatedAt:            formatTime(p.CreatedAt),
		UpdatedAt:            formatTime(p.UpdatedAt),
	}
}

func toProjects(in []dto.ProjectInput) []model.Project {
	out := make([]model.Project, 0, len(in))
	for _, p := range in {
		out = append(out, model.Project{
			Title:        strings.TrimSpace(p.Title),
			Description:  p.Description,
			Technologies: p.Technologies,
			URL:          p.URL,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
		})
	}
	return out
}

// ── 岗位 ──

func toJobResponse(j *model.Job, now time.Time) dto.JobResponse {
	years := []int(j.GraduationYears)
	if years == nil {
		years = []int{}
	}
	return dto.JobResponse{
		ID:                  j.JobID,
		RecruiterID:         j.RecruiterID,
		Title:               j.Title,
		Description:         j.Description,
		CompanyName:         j.CompanyName,
		CompanyLogo:         j.CompanyLogo,
		Skills:              nonNil(j.Skills),
		MinCGPA:             j.MinCGPA,
		AllowedPrograms:     nonNil(j.AllowedPrograms),
		GraduationYears:     years,
		Location:            j.Location,
		LocationType:        j.LocationType,
		JobType:             j.JobType,
		StipendMin:          j.StipendMin,
		StipendMax:          j.StipendMax,
		StipendCurrency:     j.StipendCurrency,
		DurationValue:       j.DurationValue,
		DurationUnit:        j.DurationUnit,
		Openings:            j.Openings,
		ApplicationDeadline: formatTime(j.ApplicationDeadline),
		Status:              j.Status,
		ApplicationCount:    j.ApplicationCount,
		Tags:                nonNil(j.Tags),
		IsExpired:           j.IsExpired(now),
		DaysRemaining:       j.DaysRemaining(now),
		Recruiter:           toUserBrief(j.Recruiter),
		CreatedAt:           formatTime(j.CreatedAt),
		UpdatedAt:           formatTime(j.UpdatedAt),
	}
}

func toJobBrief(j *model.Job) *dto.JobBrief {
	if j == nil {
		return nil
	}
	return &dto.JobBrief{
		ID:                  j.JobID,
		Title:               j.Title,
		CompanyName:         j.CompanyName,
		Location:            j.Location,
		JobType:             j.JobType,
		Status:              j.Status,
		ApplicationDeadline: formatTime(j.ApplicationDeadline),
	}
}

// ── 投递 ──

func toApplicationResponse(a *model.Application) dto.ApplicationResponse {
	scores := a.Scores.Data()
	notes := make([]dto.ReviewerNoteResponse, 0, len(a.ReviewerNotes))
	for _, n := range a.ReviewerNotes {
		notes = append(notes, dto.ReviewerNoteResponse{
			ReviewerID: n.ReviewerID,
			Note:       n.Note,
			Rating:     n.Rating,
			CreatedAt:  formatTime(n.CreatedAt),
		})
	}

	var interview *dto.InterviewResponse
	if d := a.InterviewDetails.Data(); d.ScheduledAt != nil {
		interview = &dto.InterviewResponse{
			ScheduledAt:     formatTimePtr(d.ScheduledAt),
			DurationMinutes: d.DurationMinutes,
			Location:        d.Location,
			MeetingLink:     d.MeetingLink,
			Interviewers:    d.Interviewers,
		}
	}

	return dto.ApplicationResponse{
		ID:          a.ApplicationID,
		JobID:       a.JobID,
		StudentID:   a.StudentID,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Stage:       a.Stage,
		Scores: dto.ScoresResponse{
			Resume:    scores.Resume,
			Interview: scores.Interview,
			Technical: scores.Technical,
			Overall:   scores.Overall,
		},
		ReviewerNotes: notes,
		Interview:     interview,
		AppliedAt:     formatTime(a.AppliedAt),
		UpdatedAt:     formatTime(a.UpdatedAt),
		Job:           toJobBrief(a.Job),
		Student:       toUserBrief(a.Student),
	}
}

func toApplicationResponses(apps []model.Application) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, toApplicationResponse(&apps[i]))
	}
	return out
}

// ── 参考数据 ──

func toDepartmentResponse(d *model.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:          d.DepartmentID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		Programs:    nonNil(d.Programs),
		IsActive:    d.IsActive,
		CreatedAt:   formatTime(d.CreatedAt),
		UpdatedAt:   formatTime(d.UpdatedAt),
	}
}

func toSkillResponse(s *model.Skill) dto.SkillResponse {
	return dto.SkillResponse{
		ID:         s.SkillID,
		Name:       s.Name,
		Category:   s.Category,
		UsageCount: s.UsageCount,
		IsActive:   s.IsActive,
	}
}

func toVerificationResponse(v *model.Verification, now time.Time) dto.VerificationResponse {
	meta := v.Metadata.Data()
	return dto.VerificationResponse{
		ID:           v.VerificationID,
		StudentID:    v.StudentID,
		DocumentType: v.DocumentType,
		DocumentName: v.DocumentName,
		DocumentURL:  v.DocumentURL,
		Status:       v.Status,
		Remarks:      v.Remarks,
		ReviewedBy:   v.ReviewedBy,
		ReviewedAt:   formatTimePtr(v.ReviewedAt),
		SubmittedAt:  formatTime(v.SubmittedAt),
		DaysPending:  v.DaysPending(now),
		FileSize:     meta.FileSize,
		FileType:     meta.FileType,
		Student:      toUserBrief(v.Student),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// normalizeList 去空白、去空串、去重，保持原顺序
func normalizeList(in []string, lower bool) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if lower {
			s = strings.ToLower(s)
		}
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// splitCSV 解析逗号分隔的查询参数
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return normalizeList(strings.Split(s, ","), false)
}
