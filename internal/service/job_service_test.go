package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
)

func setupJobService() (JobService, *mockStore) {
	repo, st := newMockRepository()
	return NewJobService(repo, zap.NewNop()), st
}

func validJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:               "Go 开发实习",
		Description:         "参与支付系统开发",
		CompanyName:         "Acme",
		Location:            "Pune",
		ApplicationDeadline: time.Now().Add(48 * time.Hour),
	}
}

func TestNormalizeJobType(t *testing.T) {
	tests := map[string]string{
		"fulltime":   model.JobTypeFullTime,
		"Full-Time":  model.JobTypeFullTime,
		"full_time":  model.JobTypeFullTime,
		"full time":  model.JobTypeFullTime,
		"part_time":  model.JobTypePartTime,
		"PartTime":   model.JobTypePartTime,
		"contract":   model.JobTypeContract,
		"internship": model.JobTypeInternship,
		"":           model.JobTypeInternship,
		"freelance":  model.JobTypeInternship,
	}
	for in, want := range tests {
		if got := NormalizeJobType(in); got != want {
			t.Errorf("NormalizeJobType(%q) = %s, 期望 %s", in, got, want)
		}
	}
}

func TestJobService_Create(t *testing.T) {
	svc, st := setupJobService()
	rec := seedUser(st, "recruiter")

	req := validJobRequest()
	req.CompanyName = ""
	req.Company = "Globex"
	req.Type = "Full Time"
	req.Requirements = []string{"Go", "Postgres"}

	resp, err := svc.Create(context.Background(), req, rec.UserID)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.CompanyName != "Globex" {
		t.Errorf("company 应映射为 company_name, 实际=%q", resp.CompanyName)
	}
	if resp.JobType != model.JobTypeFullTime {
		t.Errorf("期望 full-time, 实际=%s", resp.JobType)
	}
	if len(resp.Skills) != 2 {
		t.Errorf("skills 为空时应取 requirements, 实际=%v", resp.Skills)
	}
	if resp.Status != model.JobStatusActive || resp.RecruiterID != rec.UserID {
		t.Errorf("状态或发布者不正确: %+v", resp)
	}
	if resp.IsExpired || resp.DaysRemaining != 2 {
		t.Errorf("期望未过期且剩余 2 天, 实际 expired=%v days=%d", resp.IsExpired, resp.DaysRemaining)
	}
}

func TestJobService_Create_Validation(t *testing.T) {
	svc, st := setupJobService()
	rec := seedUser(st, "recruiter")

	past := validJobRequest()
	past.ApplicationDeadline = time.Now().Add(-time.Hour)
	if _, err := svc.Create(context.Background(), past, rec.UserID); !errors.Is(err, ErrJobDeadlinePast) {
		t.Errorf("期望 ErrJobDeadlinePast, 实际=%v", err)
	}

	noCompany := validJobRequest()
	noCompany.CompanyName = "  "
	if _, err := svc.Create(context.Background(), noCompany, rec.UserID); !errors.Is(err, ErrJobCompanyRequired) {
		t.Errorf("期望 ErrJobCompanyRequired, 实际=%v", err)
	}

	stipend := validJobRequest()
	stipend.StipendMin, stipend.StipendMax = intPtr(50000), intPtr(20000)
	if _, err := svc.Create(context.Background(), stipend, rec.UserID); !errors.Is(err, ErrJobStipendRange) {
		t.Errorf("期望 ErrJobStipendRange, 实际=%v", err)
	}
}

func TestJobService_Update_Ownership(t *testing.T) {
	svc, st := setupJobService()
	owner := seedUser(st, "recruiter")
	other := seedUser(st, "recruiter")
	admin := seedUser(st, "admin")
	job := seedJob(st, owner.UserID)

	title := "新标题"
	if _, err := svc.Update(context.Background(), job.JobID, &dto.UpdateJobRequest{Title: &title}, other.UserID, "recruiter"); !errors.Is(err, ErrNotJobOwner) {
		t.Errorf("非发布者期望 ErrNotJobOwner, 实际=%v", err)
	}

	resp, err := svc.Update(context.Background(), job.JobID, &dto.UpdateJobRequest{Title: &title}, owner.UserID, "recruiter")
	if err != nil {
		t.Fatalf("发布者更新应成功: %v", err)
	}
	if resp.Title != title {
		t.Errorf("标题未更新: %s", resp.Title)
	}

	typ := "contract"
	resp, err = svc.Update(context.Background(), job.JobID, &dto.UpdateJobRequest{Type: &typ}, admin.UserID, "admin")
	if err != nil {
		t.Fatalf("管理员更新应成功: %v", err)
	}
	if resp.JobType != model.JobTypeContract {
		t.Errorf("期望 contract, 实际=%s", resp.JobType)
	}
}

func TestJobService_UpdateStatus(t *testing.T) {
	svc, st := setupJobService()
	owner := seedUser(st, "recruiter")
	job := seedJob(st, owner.UserID)

	resp, err := svc.UpdateStatus(context.Background(), job.JobID, model.JobStatusClosed, owner.UserID, "recruiter")
	if err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if resp.Status != model.JobStatusClosed {
		t.Errorf("期望 closed, 实际=%s", resp.Status)
	}
}

func TestJobService_Delete_WithApplications(t *testing.T) {
	svc, st := setupJobService()
	owner := seedUser(st, "recruiter")
	admin := seedUser(st, "admin")
	student := seedUser(st, "student")
	job := seedJob(st, owner.UserID)
	seedApplication(st, job.JobID, student.UserID, model.StageApplied)

	if err := svc.Delete(context.Background(), job.JobID, owner.UserID, "recruiter"); !errors.Is(err, ErrJobHasApplications) {
		t.Errorf("期望 ErrJobHasApplications, 实际=%v", err)
	}

	if err := svc.Delete(context.Background(), job.JobID, admin.UserID, "admin"); err != nil {
		t.Fatalf("管理员删除应成功: %v", err)
	}
	if len(st.applications) != 0 {
		t.Errorf("管理员删除应一并删除投递, 剩余=%d", len(st.applications))
	}
	if _, ok := st.jobs[job.JobID]; ok {
		t.Error("岗位应被删除")
	}
}

func TestJobService_Delete_NoApplications(t *testing.T) {
	svc, st := setupJobService()
	owner := seedUser(st, "recruiter")
	job := seedJob(st, owner.UserID)

	if err := svc.Delete(context.Background(), job.JobID, owner.UserID, "recruiter"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.Get(context.Background(), job.JobID); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("删除后期望 ErrJobNotFound, 实际=%v", err)
	}
}

func TestJobService_List_DefaultsToActive(t *testing.T) {
	svc, st := setupJobService()
	owner := seedUser(st, "recruiter")
	seedJob(st, owner.UserID)
	seedJob(st, owner.UserID, func(j *model.Job) { j.Status = model.JobStatusClosed })

	_, total, err := svc.List(context.Background(), &dto.JobListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("公开列表默认仅 active, 实际=%d", total)
	}

	_, total, _ = svc.List(context.Background(), &dto.JobListRequest{Status: "all"})
	if total != 2 {
		t.Errorf("status=all 期望 2, 实际=%d", total)
	}

	_, total, _ = svc.ListByRecruiter(context.Background(), owner.UserID, &dto.JobListRequest{})
	if total != 2 {
		t.Errorf("招聘方列表默认不限状态, 实际=%d", total)
	}
}
