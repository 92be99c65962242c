package model

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// IntArray PostgreSQL INT[] 列（如岗位允许的毕业年份）
type IntArray []int

// Scan 解析 {2025,2026} 形式的数组文本
func (a *IntArray) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("IntArray: 不支持的类型 %T", src)
	}

	fields := strings.FieldsFunc(strings.Trim(raw, "{}"), func(r rune) bool { return r == ',' })
	out := make(IntArray, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return fmt.Errorf("IntArray: 无效元素 %q: %w", f, err)
		}
		out = append(out, n)
	}
	*a = out
	return nil
}

// Value 写回 {a,b} 文本；nil 写为 NULL
func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteByte('}')
	return b.String(), nil
}

// Contains 是否包含 n
func (a IntArray) Contains(n int) bool {
	return slices.Contains(a, n)
}

// BaseModel 审计字段，所有业务表共用
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}
