package access

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// Identifiable 已加载的实体，通过 GetID 暴露主键
type Identifiable interface {
	GetID() string
}

// NormalizeID 将归属字段统一为规范字符串
//
// 支持 string、*string、uuid.UUID、*uuid.UUID、Identifiable、fmt.Stringer。
// UUID 统一为小写带连字符形式；空值与零值 UUID 返回 ok=false。
func NormalizeID(v interface{}) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return canonical(x)
	case *string:
		if x == nil {
			return "", false
		}
		return canonical(*x)
	case uuid.UUID:
		if x == uuid.Nil {
			return "", false
		}
		return x.String(), true
	case *uuid.UUID:
		if x == nil || *x == uuid.Nil {
			return "", false
		}
		return x.String(), true
	case Identifiable:
		if isNilPointer(x) {
			return "", false
		}
		return canonical(x.GetID())
	case fmt.Stringer:
		if isNilPointer(x) {
			return "", false
		}
		return canonical(x.String())
	default:
		return "", false
	}
}

func canonical(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if id, err := uuid.Parse(s); err == nil {
		if id == uuid.Nil {
			return "", false
		}
		return id.String(), true
	}
	return s, true
}

// SameID 两个归属值规范化后是否相等；任一无法规范化时为 false
func SameID(a, b interface{}) bool {
	na, ok := NormalizeID(a)
	if !ok {
		return false
	}
	nb, ok := NormalizeID(b)
	if !ok {
		return false
	}
	return na == nb
}

// IsOwner 调用者是否为资源所有者
func IsOwner(owner interface{}, callerID string) bool {
	return SameID(owner, callerID)
}

// CanAccess 所有者或管理员可访问
func CanAccess(owner interface{}, callerID, callerRole string) bool {
	if Role(callerRole) == RoleAdmin {
		return true
	}
	return IsOwner(owner, callerID)
}

// CheckOwner CanAccess 的错误形式
func CheckOwner(owner interface{}, callerID, callerRole string) error {
	if CanAccess(owner, callerID, callerRole) {
		return nil
	}
	return ErrForbidden
}

// isNilPointer 识别装在接口里的 nil 指针
func isNilPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
