package service

import (
	"errors"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/model"
)

var (
	ErrInvalidStage    = errors.New("无效的投递阶段")
	ErrStageTerminal   = errors.New("投递已结束，无法变更阶段")
	ErrStageTransition = errors.New("不允许的阶段变更")
)

// stageOrder 主流程顺序；rejected / withdrawn 不在主流程内
var stageOrder = map[string]int{
	model.StageApplied:            0,
	model.StageScreening:          1,
	model.StageShortlisted:        2,
	model.StageInterviewScheduled: 3,
	model.StageInterviewCompleted: 4,
	model.StageSelected:           5,
}

// ValidStage 是否为已知阶段
func ValidStage(s string) bool {
	if _, ok := stageOrder[s]; ok {
		return true
	}
	return s == model.StageRejected || s == model.StageWithdrawn
}

// IsTerminalStage selected / rejected / withdrawn 为终态
func IsTerminalStage(s string) bool {
	return s == model.StageSelected || s == model.StageRejected || s == model.StageWithdrawn
}

// CheckStageTransition 校验 from → to 是否允许由 role 发起
//
//	student          仅可撤回（任意非终态 → withdrawn）
//	recruiter/admin  沿主流程前进（可跳级），或任意非终态 → rejected
//	终态不可再变更，原地变更视为非法
func CheckStageTransition(from, to, role string) error {
	if !ValidStage(to) {
		return ErrInvalidStage
	}
	if IsTerminalStage(from) {
		return ErrStageTerminal
	}
	if from == to {
		return ErrStageTransition
	}

	if to == model.StageWithdrawn {
		if access.Role(role) != access.RoleStudent {
			return ErrStageTransition
		}
		return nil
	}

	if !access.HasRole(role, access.RoleRecruiter, access.RoleAdmin) {
		return ErrStageTransition
	}
	if to == model.StageRejected {
		return nil
	}
	if stageOrder[to] <= stageOrder[from] {
		return ErrStageTransition
	}
	return nil
}
