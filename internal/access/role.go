package access

import (
	"errors"
	"strings"
)

// Role 用户角色
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	RoleFaculty   Role = "faculty"
	RoleAdmin     Role = "admin"
)

// AllRoles 全部合法角色
var AllRoles = []Role{RoleStudent, RoleRecruiter, RoleFaculty, RoleAdmin}

// Valid 是否为合法角色
func (r Role) Valid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ParseRole 严格解析角色（区分大小写）
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// ErrForbidden 角色或归属校验未通过
var ErrForbidden = errors.New("无权限访问")

// RoleError 角色不在允许集合内，携带所需角色用于诊断
type RoleError struct {
	Required []Role
}

func (e *RoleError) Error() string {
	names := make([]string, len(e.Required))
	for i, r := range e.Required {
		names[i] = string(r)
	}
	return "需要角色: " + strings.Join(names, " 或 ")
}

// Is 使 errors.Is(err, ErrForbidden) 成立
func (e *RoleError) Is(target error) bool { return target == ErrForbidden }

// RequiredNames 所需角色的字符串形式
func (e *RoleError) RequiredNames() []string {
	names := make([]string, len(e.Required))
	for i, r := range e.Required {
		names[i] = string(r)
	}
	return names
}

// CheckRole 判断 role 是否属于 allowed；未知角色一律拒绝
func CheckRole(role string, allowed ...Role) error {
	r, ok := ParseRole(role)
	if ok {
		for _, a := range allowed {
			if r == a {
				return nil
			}
		}
	}
	req := make([]Role, len(allowed))
	copy(req, allowed)
	return &RoleError{Required: req}
}

// HasRole CheckRole 的布尔形式
func HasRole(role string, allowed ...Role) bool {
	return CheckRole(role, allowed...) == nil
}
