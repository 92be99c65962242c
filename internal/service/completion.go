package service

import (
	"strings"

	"placement-portal/backend/internal/model"
)

// Completion 档案完整度
// Percentage 由字段填写情况实时计算；IsComplete 为档案上单独保存的标记
type Completion struct {
	Percentage int
	IsComplete bool
}

// completionFields 参与完整度计算的十个字段
var completionFields = []func(p *model.StudentProfile) bool{
	func(p *model.StudentProfile) bool { return notBlank(p.Program) },
	func(p *model.StudentProfile) bool { return p.GraduationYear != nil },
	func(p *model.StudentProfile) bool { return p.CGPA != nil },
	func(p *model.StudentProfile) bool { return len(p.Skills) > 0 },
	func(p *model.StudentProfile) bool { return len(p.Projects) > 0 },
	func(p *model.StudentProfile) bool { return notBlank(p.ResumeURL) },
	func(p *model.StudentProfile) bool { return notBlank(p.GitHubURL) },
	func(p *model.StudentProfile) bool { return notBlank(p.LinkedInURL) },
	func(p *model.StudentProfile) bool { return notBlank(p.PortfolioURL) },
	func(p *model.StudentProfile) bool { return notBlank(p.Bio) },
}

// ProfileCompletion 计算档案完整度，无副作用
func ProfileCompletion(p *model.StudentProfile) Completion {
	if p == nil {
		return Completion{}
	}
	filled := 0
	for _, f := range completionFields {
		if f(p) {
			filled++
		}
	}
	// 四舍五入：(filled*100 + total/2) / total
	total := len(completionFields)
	return Completion{
		Percentage: (filled*100 + total/2) / total,
		IsComplete: p.IsComplete,
	}
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
