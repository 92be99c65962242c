package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"go.uber.org/zap"

	"placement-portal/backend/internal/repository"
)

func setupStatsService(stats *mockStatsRepo) StatsService {
	repo, _ := newMockRepository()
	repo.Stats = stats
	return NewStatsService(repo, zap.NewNop())
}

func TestStatsService_Dashboard(t *testing.T) {
	depts := make([]repository.GroupCount, 0, 12)
	for i := 0; i < 12; i++ {
		depts = append(depts, repository.GroupCount{Key: fmt.Sprintf("D%02d", i), Count: int64(20 - i)})
	}
	svc := setupStatsService(&mockStatsRepo{
		students:     40,
		verified:     12,
		avg:          7.8666,
		hasAvg:       true,
		activeJobs:   3,
		allJobs:      5,
		applications: 17,
		byStage:      []repository.GroupCount{{Key: "applied", Count: 10}, {Key: "selected", Count: 2}},
		byYear:       []repository.YearCount{{Year: 2025, Count: 15}, {Year: 2026, Count: 25}},
		byDept:       depts,
	})

	got, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if got.TotalStudents != 40 || got.VerifiedStudents != 12 {
		t.Errorf("学生统计不正确: %+v", got)
	}
	if got.AvgCGPA != 7.87 {
		t.Errorf("平均 CGPA 应保留两位小数, 实际=%v", got.AvgCGPA)
	}
	if got.ActiveJobs != 3 || got.TotalJobs != 5 || got.TotalApplications != 17 {
		t.Errorf("岗位/投递统计不正确: %+v", got)
	}
	if got.ApplicationsByStage["applied"] != 10 {
		t.Errorf("阶段分布不正确: %v", got.ApplicationsByStage)
	}
	if len(got.ByYear) != 2 || got.ByYear[0].Year != 2025 {
		t.Errorf("年份分布应按年份升序: %v", got.ByYear)
	}
	if len(got.ByDepartment) != 10 || got.ByDepartment[0].Name != "D00" {
		t.Errorf("院系分布最多 10 组且按数量降序: %v", got.ByDepartment)
	}
}

func TestStatsService_Dashboard_Empty(t *testing.T) {
	svc := setupStatsService(&mockStatsRepo{})

	got, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if got.AvgCGPA != 0 {
		t.Errorf("无 CGPA 数据时应为 0, 实际=%v", got.AvgCGPA)
	}
	if got.ByYear == nil || got.ByDepartment == nil || got.ApplicationsByStage == nil {
		t.Error("空集合应序列化为 [] / {} 而非 null")
	}
}

func TestStatsService_Dashboard_Error(t *testing.T) {
	boom := errors.New("db down")
	svc := setupStatsService(&mockStatsRepo{err: boom})

	if _, err := svc.Dashboard(context.Background()); !errors.Is(err, boom) {
		t.Errorf("期望透传底层错误, 实际=%v", err)
	}
}

func TestRoundTo2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{8.125, 8.13},
		{7.994, 7.99},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := roundTo2(tt.in); got != tt.want {
			t.Errorf("roundTo2(%v) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}
