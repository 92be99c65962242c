package service

import (
	"testing"

	"gorm.io/datatypes"

	"placement-portal/backend/internal/model"
)

func TestProfileCompletion(t *testing.T) {
	full := &model.StudentProfile{
		Program:        "B.Tech",
		GraduationYear: intPtr(2026),
		CGPA:           floatPtr(9.1),
		Skills:         []string{"go"},
		Projects:       datatypes.JSONSlice[model.Project]{{Title: "编译器"}},
		ResumeURL:      "r",
		GitHubURL:      "g",
		LinkedInURL:    "l",
		PortfolioURL:   "p",
		Bio:            "b",
	}

	tests := []struct {
		name    string
		profile *model.StudentProfile
		want    int
	}{
		{"nil", nil, 0},
		{"empty", &model.StudentProfile{}, 0},
		{"full", full, 100},
		{"program only", &model.StudentProfile{Program: "MCA"}, 10},
		{"blank strings ignored", &model.StudentProfile{Program: "  ", Bio: "\t"}, 0},
		{"zero cgpa counts", &model.StudentProfile{CGPA: floatPtr(0)}, 10},
		{"empty skills ignored", &model.StudentProfile{Skills: []string{}}, 0},
		{"three fields", &model.StudentProfile{Program: "x", Bio: "y", GitHubURL: "z"}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfileCompletion(tt.profile)
			if got.Percentage != tt.want {
				t.Errorf("期望 %d%%, 实际=%d%%", tt.want, got.Percentage)
			}
		})
	}
}

func TestProfileCompletion_IsCompleteIsStoredFlag(t *testing.T) {
	p := &model.StudentProfile{Program: "x", IsComplete: true}
	c := ProfileCompletion(p)
	if !c.IsComplete {
		t.Error("IsComplete 应取自档案标记")
	}
	if c.Percentage != 10 {
		t.Errorf("百分比不受标记影响, 实际=%d", c.Percentage)
	}

	p.IsComplete = false
	p.Bio, p.ResumeURL = "b", "r"
	if ProfileCompletion(p).IsComplete {
		t.Error("未标记时 IsComplete 应为 false")
	}
}
