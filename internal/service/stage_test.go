package service

import (
	"errors"
	"testing"

	"placement-portal/backend/internal/model"
)

func TestCheckStageTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		role     string
		wantErr  error
	}{
		{"recruiter forward", model.StageApplied, model.StageScreening, "recruiter", nil},
		{"recruiter skip ahead", model.StageApplied, model.StageInterviewScheduled, "recruiter", nil},
		{"admin select", model.StageInterviewCompleted, model.StageSelected, "admin", nil},
		{"recruiter reject", model.StageShortlisted, model.StageRejected, "recruiter", nil},
		{"recruiter backwards", model.StageShortlisted, model.StageScreening, "recruiter", ErrStageTransition},
		{"same stage", model.StageScreening, model.StageScreening, "recruiter", ErrStageTransition},
		{"student withdraw", model.StageInterviewScheduled, model.StageWithdrawn, "student", nil},
		{"student forward", model.StageApplied, model.StageScreening, "student", ErrStageTransition},
		{"recruiter withdraw", model.StageApplied, model.StageWithdrawn, "recruiter", ErrStageTransition},
		{"faculty forward", model.StageApplied, model.StageScreening, "faculty", ErrStageTransition},
		{"from selected", model.StageSelected, model.StageRejected, "admin", ErrStageTerminal},
		{"from rejected", model.StageRejected, model.StageScreening, "recruiter", ErrStageTerminal},
		{"from withdrawn", model.StageWithdrawn, model.StageWithdrawn, "student", ErrStageTerminal},
		{"unknown target", model.StageApplied, "hired", "admin", ErrInvalidStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStageTransition(tt.from, tt.to, tt.role)
			if tt.wantErr == nil && err != nil {
				t.Errorf("期望允许, 实际=%v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v, 实际=%v", tt.wantErr, err)
			}
		})
	}
}

func TestIsTerminalStage(t *testing.T) {
	for _, s := range []string{model.StageSelected, model.StageRejected, model.StageWithdrawn} {
		if !IsTerminalStage(s) {
			t.Errorf("%s 应为终态", s)
		}
	}
	if IsTerminalStage(model.StageInterviewCompleted) {
		t.Error("interview-completed 不是终态")
	}
}
