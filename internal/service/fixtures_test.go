package service

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/pkg/jwt"
)

// ── 测试数据构造 ──

const testPassword = "secret123"

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-at-least-16",
		TokenTTL:  time.Hour,
		Issuer:    "test",
	})
}

func seedUser(st *mockStore, role string, mut ...func(u *model.User)) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	u := &model.User{
		UserID:         uuid.New().String(),
		Name:           "用户" + role,
		Email:          role + "-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash:   string(hash),
		Role:           role,
		IsActive:       true,
		ApprovalStatus: model.ApprovalApproved,
	}
	for _, f := range mut {
		f(u)
	}
	st.users[u.UserID] = u
	return u
}

func seedProfile(st *mockStore, userID string, mut ...func(p *model.StudentProfile)) *model.StudentProfile {
	year := time.Now().Year() + 1
	cgpa := 8.2
	p := &model.StudentProfile{
		ProfileID:      uuid.New().String(),
		UserID:         userID,
		Program:        "B.Tech CSE",
		GraduationYear: &year,
		CGPA:           &cgpa,
		Skills:         []string{"go", "sql"},
		ResumeURL:      "https://files.example.com/resume.pdf",
	}
	for _, f := range mut {
		f(p)
	}
	st.profiles[p.ProfileID] = p
	return p
}

func seedJob(st *mockStore, recruiterID string, mut ...func(j *model.Job)) *model.Job {
	j := &model.Job{
		JobID:               uuid.New().String(),
		RecruiterID:         recruiterID,
		Title:               "后端实习生",
		Description:         "负责后端服务开发",
		CompanyName:         "Acme",
		Location:            "Bengaluru",
		LocationType:        model.LocationOnsite,
		JobType:             model.JobTypeInternship,
		Openings:            2,
		ApplicationDeadline: time.Now().Add(7 * 24 * time.Hour),
		Status:              model.JobStatusActive,
	}
	for _, f := range mut {
		f(j)
	}
	st.jobs[j.JobID] = j
	return j
}

func seedApplication(st *mockStore, jobID, studentID, stage string) *model.Application {
	a := &model.Application{
		ApplicationID: uuid.New().String(),
		JobID:         jobID,
		StudentID:     studentID,
		ResumeURL:     "https://files.example.com/resume.pdf",
		Stage:         stage,
		AppliedAt:     time.Now(),
	}
	st.applications[a.ApplicationID] = a
	if j, ok := st.jobs[jobID]; ok {
		j.ApplicationCount++
	}
	return a
}

func intPtr(n int) *int { return &n }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }
