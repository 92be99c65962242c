package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate 唯一约束冲突：记录已存在
var ErrDuplicate = errors.New("记录已存在")

const uniqueViolation = "23505"

// IsUniqueViolation 判断是否为 PostgreSQL 唯一约束冲突
// constraint 为空时匹配任意约束
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	if constraint == "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// TranslateDuplicate 将唯一约束冲突转为 ErrDuplicate，其他错误原样返回
func TranslateDuplicate(err error) error {
	if IsUniqueViolation(err, "") {
		return ErrDuplicate
	}
	return err
}
