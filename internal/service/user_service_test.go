package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
)

func setupUserService() (UserService, *mockStore) {
	repo, st := newMockRepository()
	return NewUserService(repo, zap.NewNop()), st
}

func TestUserService_CreateFaculty(t *testing.T) {
	svc, st := setupUserService()
	admin := seedUser(st, "admin")

	resp, err := svc.CreateFaculty(context.Background(), &dto.CreateFacultyRequest{
		Name: "李老师", Email: "Li@College.edu", Department: "CSE",
	}, admin.UserID)
	if err != nil {
		t.Fatalf("CreateFaculty 应成功: %v", err)
	}
	if len(resp.TempPassword) != 10 {
		t.Errorf("临时密码长度应为 10, 实际=%d", len(resp.TempPassword))
	}
	if resp.User.Role != "faculty" || !resp.User.MustChangePassword {
		t.Errorf("应为需改密的教师账号: %+v", resp.User)
	}

	stored := st.users[resp.User.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(resp.TempPassword)); err != nil {
		t.Error("临时密码应可用于登录")
	}

	_, err = svc.CreateFaculty(context.Background(), &dto.CreateFacultyRequest{
		Name: "重复", Email: "li@college.edu", Department: "CSE",
	}, admin.UserID)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists, 实际=%v", err)
	}
}

func TestUserService_ApproveRecruiter(t *testing.T) {
	svc, st := setupUserService()
	admin := seedUser(st, "admin")
	rec := seedUser(st, "recruiter", func(u *model.User) {
		u.IsActive = false
		u.ApprovalStatus = model.ApprovalPending
	})
	student := seedUser(st, "student")

	resp, err := svc.ApproveRecruiter(context.Background(), rec.UserID, admin.UserID)
	if err != nil {
		t.Fatalf("ApproveRecruiter 应成功: %v", err)
	}
	if !resp.IsActive || resp.ApprovalStatus != model.ApprovalApproved {
		t.Errorf("审核后应启用: %+v", resp)
	}

	if _, err := svc.ApproveRecruiter(context.Background(), rec.UserID, admin.UserID); !errors.Is(err, ErrAlreadyApproved) {
		t.Errorf("期望 ErrAlreadyApproved, 实际=%v", err)
	}
	if _, err := svc.ApproveRecruiter(context.Background(), student.UserID, admin.UserID); !errors.Is(err, ErrNotRecruiter) {
		t.Errorf("期望 ErrNotRecruiter, 实际=%v", err)
	}
}

func TestUserService_SetActive(t *testing.T) {
	svc, st := setupUserService()
	admin := seedUser(st, "admin")
	u := seedUser(st, "student")

	resp, err := svc.SetActive(context.Background(), u.UserID, false, admin.UserID)
	if err != nil {
		t.Fatalf("SetActive 应成功: %v", err)
	}
	if resp.IsActive {
		t.Error("账号应被停用")
	}

	if _, err := svc.SetActive(context.Background(), admin.UserID, false, admin.UserID); !errors.Is(err, ErrUserSelfDeactivate) {
		t.Errorf("期望 ErrUserSelfDeactivate, 实际=%v", err)
	}
	if _, err := svc.SetActive(context.Background(), "missing", true, admin.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound, 实际=%v", err)
	}
}

func TestUserService_List(t *testing.T) {
	svc, st := setupUserService()
	seedUser(st, "student")
	seedUser(st, "student")
	seedUser(st, "recruiter")

	list, total, err := svc.List(context.Background(), &dto.UserListRequest{Role: "student"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("期望 2 个学生, 实际 total=%d len=%d", total, len(list))
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pwd, err := generateTempPassword(12)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if len(pwd) != 12 {
		t.Errorf("期望长度 12, 实际=%d", len(pwd))
	}
	hasDigit := false
	for _, c := range pwd {
		if c >= '0' && c <= '9' {
			hasDigit = true
		}
	}
	if !hasDigit {
		t.Error("临时密码应包含数字")
	}
}
