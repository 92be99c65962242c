package access

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type ownerEntity struct{ id string }

func (o *ownerEntity) GetID() string { return o.id }

type stringerID struct{ id string }

func (s stringerID) String() string { return s.id }

func TestCheckRole(t *testing.T) {
	tests := []struct {
		role    string
		allowed []Role
		want    bool
	}{
		{"admin", []Role{RoleAdmin}, true},
		{"recruiter", []Role{RoleAdmin, RoleRecruiter}, true},
		{"student", []Role{RoleAdmin, RoleRecruiter}, false},
		{"faculty", []Role{RoleFaculty, RoleAdmin}, true},
		{"Admin", []Role{RoleAdmin}, false},
		{"", []Role{RoleAdmin}, false},
		{"superuser", []Role{RoleAdmin}, false},
		{"student", nil, false},
	}
	for _, tt := range tests {
		err := CheckRole(tt.role, tt.allowed...)
		if (err == nil) != tt.want {
			t.Errorf("CheckRole(%q, %v) err=%v，期望允许=%v", tt.role, tt.allowed, err, tt.want)
		}
		if err != nil && !errors.Is(err, ErrForbidden) {
			t.Errorf("拒绝时期望 errors.Is(ErrForbidden)")
		}
	}
}

func TestCheckRole_DeterministicAndNamesRoles(t *testing.T) {
	for i := 0; i < 3; i++ {
		err := CheckRole("student", RoleAdmin, RoleRecruiter)
		var re *RoleError
		if !errors.As(err, &re) {
			t.Fatalf("期望 *RoleError，实际 %T", err)
		}
		names := re.RequiredNames()
		if len(names) != 2 || names[0] != "admin" || names[1] != "recruiter" {
			t.Errorf("期望 [admin recruiter]，实际=%v", names)
		}
		if re.Error() != "需要角色: admin 或 recruiter" {
			t.Errorf("错误信息不符: %s", re.Error())
		}
	}
}

func TestNormalizeID_AllShapesAgree(t *testing.T) {
	id := uuid.New()
	upper := "  " + strings.ToUpper(id.String()) + " "
	s := id.String()

	shapes := []interface{}{
		id,
		&id,
		s,
		&s,
		upper,
		&ownerEntity{id: s},
		stringerID{id: s},
	}
	for i, shape := range shapes {
		got, ok := NormalizeID(shape)
		if !ok || got != id.String() {
			t.Errorf("shape#%d (%T) 规范化为 %q ok=%v，期望 %q", i, shape, got, ok, id.String())
		}
		if !IsOwner(shape, s) {
			t.Errorf("shape#%d (%T) 应判定为所有者", i, shape)
		}
		if IsOwner(shape, uuid.NewString()) {
			t.Errorf("shape#%d (%T) 不应匹配其他用户", i, shape)
		}
	}
}

func TestNormalizeID_Invalid(t *testing.T) {
	var nilStr *string
	var nilUUID *uuid.UUID
	var nilEntity *ownerEntity
	for i, v := range []interface{}{nil, "", "   ", nilStr, nilUUID, uuid.Nil, uuid.Nil.String(), nilEntity, 42} {
		if got, ok := NormalizeID(v); ok {
			t.Errorf("case#%d (%T) 期望无法规范化，实际=%q", i, v, got)
		}
	}
}

func TestCanAccess(t *testing.T) {
	owner := uuid.NewString()
	other := uuid.NewString()

	if !CanAccess(owner, owner, "recruiter") {
		t.Error("所有者应可访问")
	}
	if CanAccess(owner, other, "recruiter") {
		t.Error("非所有者不应访问")
	}
	if !CanAccess(owner, other, "admin") {
		t.Error("管理员应可访问")
	}
	if !CanAccess(nil, other, "admin") {
		t.Error("管理员覆盖不依赖归属字段")
	}
	if CanAccess(nil, "", "recruiter") {
		t.Error("双方为空不应视为相等")
	}
	if !errors.Is(CheckOwner(owner, other, "student"), ErrForbidden) {
		t.Error("CheckOwner 应返回 ErrForbidden")
	}
}
