package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
)

// departmentGroupLimit 院系分布最多返回的分组数
const departmentGroupLimit = 10

// StatsService 管理端统计
type StatsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardStats, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Dashboard(ctx context.Context) (*dto.DashboardStats, error) {
	st := s.repo.Stats
	out := &dto.DashboardStats{
		ByYear:              []dto.YearBucket{},
		ByDepartment:        []dto.GroupBucket{},
		ApplicationsByStage: map[string]int64{},
	}

	var err error
	if out.TotalStudents, err = st.CountUsersByRole(ctx, string(access.RoleStudent)); err != nil {
		return nil, s.fail("统计学生总数失败", err)
	}
	if out.VerifiedStudents, err = st.CountVerifiedStudents(ctx); err != nil {
		return nil, s.fail("统计已认证学生失败", err)
	}

	avg, ok, err := st.AvgCGPA(ctx)
	if err != nil {
		return nil, s.fail("统计平均 CGPA 失败", err)
	}
	if ok {
		out.AvgCGPA = roundTo2(avg)
	}

	if out.ActiveJobs, err = st.CountJobs(ctx, model.JobStatusActive); err != nil {
		return nil, s.fail("统计在招岗位失败", err)
	}
	if out.TotalJobs, err = st.CountJobs(ctx, ""); err != nil {
		return nil, s.fail("统计岗位总数失败", err)
	}
	if out.TotalApplications, err = st.CountApplications(ctx); err != nil {
		return nil, s.fail("统计投递总数失败", err)
	}

	stages, err := st.ApplicationsByStage(ctx)
	if err != nil {
		return nil, s.fail("统计投递阶段分布失败", err)
	}
	for _, g := range stages {
		out.ApplicationsByStage[g.Key] = g.Count
	}

	years, err := st.StudentsByGraduationYear(ctx)
	if err != nil {
		return nil, s.fail("统计毕业年份分布失败", err)
	}
	for _, y := range years {
		out.ByYear = append(out.ByYear, dto.YearBucket{Year: y.Year, Count: y.Count})
	}

	depts, err := st.StudentsByDepartment(ctx, departmentGroupLimit)
	if err != nil {
		return nil, s.fail("统计院系分布失败", err)
	}
	for _, d := range topGroups(depts, departmentGroupLimit) {
		out.ByDepartment = append(out.ByDepartment, dto.GroupBucket{Name: d.Key, Count: d.Count})
	}

	return out, nil
}

func (s *statsService) fail(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return err
}

// roundTo2 保留两位小数；NaN / Inf 视为 0
func roundTo2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// topGroups 截断到 limit 个分组（输入已按数量降序）
func topGroups(groups []repository.GroupCount, limit int) []repository.GroupCount {
	if limit > 0 && len(groups) > limit {
		return groups[:limit]
	}
	return groups
}
