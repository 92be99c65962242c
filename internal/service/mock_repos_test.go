package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
	pkgerrors "placement-portal/backend/pkg/errors"
)

// newMockRepository 全部使用内存实现；未绑定数据库时 Transaction 直接执行回调
func newMockRepository() (*repository.Repository, *mockStore) {
	st := &mockStore{
		users:         make(map[string]*model.User),
		profiles:      make(map[string]*model.StudentProfile),
		jobs:          make(map[string]*model.Job),
		applications:  make(map[string]*model.Application),
		departments:   make(map[string]*model.Department),
		skills:        make(map[string]*model.Skill),
		verifications: make(map[string]*model.Verification),
	}
	return &repository.Repository{
		User:         &mockUserRepo{st},
		Profile:      &mockProfileRepo{st},
		Job:          &mockJobRepo{st},
		Application:  &mockApplicationRepo{st},
		Department:   &mockDeptRepo{st},
		Skill:        &mockSkillRepo{st},
		Verification: &mockVerificationRepo{st},
		Stats:        &mockStatsRepo{},
	}, st
}

type mockStore struct {
	users         map[string]*model.User
	profiles      map[string]*model.StudentProfile // key: profile_id
	jobs          map[string]*model.Job
	applications  map[string]*model.Application
	departments   map[string]*model.Department
	skills        map[string]*model.Skill
	verifications map[string]*model.Verification
}

func stamp(b *model.BaseModel) {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// ── Mock UserRepository ──

type mockUserRepo struct{ st *mockStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.st.users {
		if u.Email == user.Email {
			return pkgerrors.ErrDuplicate
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	stamp(&user.BaseModel)
	m.st.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.st.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stamp(&user.BaseModel)
	m.st.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := m.st.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.st.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.st.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, f *repository.UserListFilters, page repository.Page) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range m.st.users {
		if f != nil {
			if f.Role != "" && u.Role != f.Role {
				continue
			}
			if f.IsActive != nil && u.IsActive != *f.IsActive {
				continue
			}
			if f.Keyword != "" && !strings.Contains(u.Name, f.Keyword) && !strings.Contains(u.Email, f.Keyword) {
				continue
			}
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paginate(out, page), int64(len(out)), nil
}

// ── Mock ProfileRepository ──

type mockProfileRepo struct{ st *mockStore }

func (m *mockProfileRepo) Create(_ context.Context, p *model.StudentProfile) error {
	for _, e := range m.st.profiles {
		if e.UserID == p.UserID {
			return pkgerrors.ErrDuplicate
		}
	}
	if p.ProfileID == "" {
		p.ProfileID = uuid.New().String()
	}
	stamp(&p.BaseModel)
	m.st.profiles[p.ProfileID] = p
	return nil
}

func (m *mockProfileRepo) withUser(p *model.StudentProfile) *model.StudentProfile {
	p.User = m.st.users[p.UserID]
	return p
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (*model.StudentProfile, error) {
	if p, ok := m.st.profiles[id]; ok {
		return m.withUser(p), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.StudentProfile, error) {
	for _, p := range m.st.profiles {
		if p.UserID == userID {
			return m.withUser(p), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Update(_ context.Context, p *model.StudentProfile) error {
	stamp(&p.BaseModel)
	m.st.profiles[p.ProfileID] = p
	return nil
}

func (m *mockProfileRepo) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, p := range m.st.profiles {
		if p.UserID == userID {
			delete(m.st.profiles, id)
			n++
		}
	}
	return n, nil
}

func (m *mockProfileRepo) List(_ context.Context, f *repository.ProfileListFilters, page repository.Page) ([]model.StudentProfile, int64, error) {
	var out []model.StudentProfile
	for _, p := range m.st.profiles {
		if f != nil {
			if f.GraduationYear > 0 && (p.GraduationYear == nil || *p.GraduationYear != f.GraduationYear) {
				continue
			}
			if f.MinCGPA != nil && (p.CGPA == nil || *p.CGPA < *f.MinCGPA) {
				continue
			}
			if len(f.Skills) > 0 && !anyOf(p.Skills, f.Skills) {
				continue
			}
		}
		out = append(out, *m.withUser(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return paginate(out, page), int64(len(out)), nil
}

// ── Mock JobRepository ──

type mockJobRepo struct{ st *mockStore }

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	stamp(&job.BaseModel)
	m.st.jobs[job.JobID] = job
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id string) (*model.Job, error) {
	if j, ok := m.st.jobs[id]; ok {
		j.Recruiter = m.st.users[j.RecruiterID]
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobRepo) Update(_ context.Context, job *model.Job) error {
	stamp(&job.BaseModel)
	m.st.jobs[job.JobID] = job
	return nil
}

func (m *mockJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.st.jobs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.st.jobs, id)
	return nil
}

func (m *mockJobRepo) List(_ context.Context, f *repository.JobListFilters, page repository.Page) ([]model.Job, int64, error) {
	var out []model.Job
	for _, j := range m.st.jobs {
		if f != nil {
			if f.Status != "" && j.Status != f.Status {
				continue
			}
			if f.RecruiterID != "" && j.RecruiterID != f.RecruiterID {
				continue
			}
			if f.JobType != "" && j.JobType != f.JobType {
				continue
			}
			if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
				continue
			}
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return paginate(out, page), int64(len(out)), nil
}

func (m *mockJobRepo) IncrementApplicationCount(_ context.Context, id string, delta int) error {
	j, ok := m.st.jobs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	j.ApplicationCount += delta
	if j.ApplicationCount < 0 {
		j.ApplicationCount = 0
	}
	return nil
}

func (m *mockJobRepo) RecomputeApplicationCounts(_ context.Context, ids []string) error {
	for _, id := range ids {
		j, ok := m.st.jobs[id]
		if !ok {
			continue
		}
		n := 0
		for _, a := range m.st.applications {
			if a.JobID == id {
				n++
			}
		}
		j.ApplicationCount = n
	}
	return nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct{ st *mockStore }

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	// 模拟 (job_id, student_id) 唯一索引
	for _, a := range m.st.applications {
		if a.JobID == app.JobID && a.StudentID == app.StudentID {
			return pkgerrors.ErrDuplicate
		}
	}
	if app.ApplicationID == "" {
		app.ApplicationID = uuid.New().String()
	}
	stamp(&app.BaseModel)
	m.st.applications[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.st.applications[id]; ok {
		a.Job = m.st.jobs[a.JobID]
		a.Student = m.st.users[a.StudentID]
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.Application) error {
	stamp(&app.BaseModel)
	m.st.applications[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) filter(keep func(a *model.Application) bool, stage string, page repository.Page) ([]model.Application, int64, error) {
	var out []model.Application
	for _, a := range m.st.applications {
		if !keep(a) || (stage != "" && a.Stage != stage) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApplicationID < out[j].ApplicationID })
	return paginate(out, page), int64(len(out)), nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID, stage string, page repository.Page) ([]model.Application, int64, error) {
	return m.filter(func(a *model.Application) bool { return a.StudentID == studentID }, stage, page)
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, jobID, stage string, page repository.Page) ([]model.Application, int64, error) {
	return m.filter(func(a *model.Application) bool { return a.JobID == jobID }, stage, page)
}

func (m *mockApplicationRepo) ExistsForJobStudent(_ context.Context, jobID, studentID string) (bool, error) {
	for _, a := range m.st.applications {
		if a.JobID == jobID && a.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) ListJobIDsByStudent(_ context.Context, studentID string) ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, a := range m.st.applications {
		if a.StudentID == studentID && !seen[a.JobID] {
			seen[a.JobID] = true
			ids = append(ids, a.JobID)
		}
	}
	return ids, nil
}

func (m *mockApplicationRepo) DeleteByStudent(_ context.Context, studentID string) (int64, error) {
	var n int64
	for id, a := range m.st.applications {
		if a.StudentID == studentID {
			delete(m.st.applications, id)
			n++
		}
	}
	return n, nil
}

func (m *mockApplicationRepo) DeleteByJob(_ context.Context, jobID string) (int64, error) {
	var n int64
	for id, a := range m.st.applications {
		if a.JobID == jobID {
			delete(m.st.applications, id)
			n++
		}
	}
	return n, nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct{ st *mockStore }

func (m *mockDeptRepo) Create(_ context.Context, d *model.Department) error {
	for _, e := range m.st.departments {
		if e.Name == d.Name || e.Code == d.Code {
			return pkgerrors.ErrDuplicate
		}
	}
	if d.DepartmentID == "" {
		d.DepartmentID = uuid.New().String()
	}
	stamp(&d.BaseModel)
	m.st.departments[d.DepartmentID] = d
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.st.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context, activeOnly bool) ([]model.Department, error) {
	var out []model.Department
	for _, d := range m.st.departments {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockDeptRepo) Update(_ context.Context, d *model.Department) error {
	for id, e := range m.st.departments {
		if id != d.DepartmentID && (e.Name == d.Name || e.Code == d.Code) {
			return pkgerrors.ErrDuplicate
		}
	}
	stamp(&d.BaseModel)
	m.st.departments[d.DepartmentID] = d
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.st.departments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.st.departments, id)
	return nil
}

// ── Mock SkillRepository ──

type mockSkillRepo struct{ st *mockStore }

func (m *mockSkillRepo) Create(_ context.Context, s *model.Skill) error {
	for _, e := range m.st.skills {
		if e.Name == s.Name {
			return pkgerrors.ErrDuplicate
		}
	}
	if s.SkillID == "" {
		s.SkillID = uuid.New().String()
	}
	m.st.skills[s.SkillID] = s
	return nil
}

func (m *mockSkillRepo) GetByID(_ context.Context, id string) (*model.Skill, error) {
	if s, ok := m.st.skills[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSkillRepo) List(_ context.Context, f *repository.SkillListFilters) ([]model.Skill, error) {
	var out []model.Skill
	for _, s := range m.st.skills {
		if f != nil {
			if f.Category != "" && s.Category != f.Category {
				continue
			}
			if f.ActiveOnly && !s.IsActive {
				continue
			}
			if f.Keyword != "" && !strings.Contains(s.Name, strings.ToLower(f.Keyword)) {
				continue
			}
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *mockSkillRepo) Categories(_ context.Context) ([]repository.CategoryCount, error) {
	counts := map[string]int64{}
	for _, s := range m.st.skills {
		if s.IsActive {
			counts[s.Category]++
		}
	}
	var out []repository.CategoryCount
	for c, n := range counts {
		out = append(out, repository.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (m *mockSkillRepo) Update(_ context.Context, s *model.Skill) error {
	for id, e := range m.st.skills {
		if id != s.SkillID && e.Name == s.Name {
			return pkgerrors.ErrDuplicate
		}
	}
	m.st.skills[s.SkillID] = s
	return nil
}

func (m *mockSkillRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.st.skills[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.st.skills, id)
	return nil
}

func (m *mockSkillRepo) IncrementUsage(_ context.Context, names []string) error {
	for _, n := range names {
		for _, s := range m.st.skills {
			if s.Name == n {
				s.UsageCount++
			}
		}
	}
	return nil
}

// ── Mock VerificationRepository ──

type mockVerificationRepo struct{ st *mockStore }

func (m *mockVerificationRepo) Create(_ context.Context, v *model.Verification) error {
	if v.VerificationID == "" {
		v.VerificationID = uuid.New().String()
	}
	stamp(&v.BaseModel)
	m.st.verifications[v.VerificationID] = v
	return nil
}

func (m *mockVerificationRepo) GetByID(_ context.Context, id string) (*model.Verification, error) {
	if v, ok := m.st.verifications[id]; ok {
		v.Student = m.st.users[v.StudentID]
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVerificationRepo) Update(_ context.Context, v *model.Verification) error {
	stamp(&v.BaseModel)
	m.st.verifications[v.VerificationID] = v
	return nil
}

func (m *mockVerificationRepo) ListByStudent(_ context.Context, studentID string) ([]model.Verification, error) {
	var out []model.Verification
	for _, v := range m.st.verifications {
		if v.StudentID == studentID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVerificationRepo) ListQueue(_ context.Context, f *repository.VerificationQueueFilters, page repository.Page) ([]model.Verification, int64, error) {
	status := model.VerificationPending
	if f != nil && f.Status != "" {
		status = f.Status
	}
	var out []model.Verification
	for _, v := range m.st.verifications {
		if v.Status != status {
			continue
		}
		if f != nil && f.DocumentType != "" && v.DocumentType != f.DocumentType {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return paginate(out, page), int64(len(out)), nil
}

func (m *mockVerificationRepo) DeleteByStudent(_ context.Context, studentID string) (int64, error) {
	var n int64
	for id, v := range m.st.verifications {
		if v.StudentID == studentID {
			delete(m.st.verifications, id)
			n++
		}
	}
	return n, nil
}

// ── Mock StatsRepository ──

// mockStatsRepo 返回预设结果
type mockStatsRepo struct {
	students, verified  int64
	avg                 float64
	hasAvg              bool
	activeJobs, allJobs int64
	applications        int64
	byStage             []repository.GroupCount
	byYear              []repository.YearCount
	byDept              []repository.GroupCount
	err                 error
}

func (m *mockStatsRepo) CountUsersByRole(_ context.Context, _ string) (int64, error) {
	return m.students, m.err
}

func (m *mockStatsRepo) CountVerifiedStudents(_ context.Context) (int64, error) {
	return m.verified, m.err
}

func (m *mockStatsRepo) AvgCGPA(_ context.Context) (float64, bool, error) {
	return m.avg, m.hasAvg, m.err
}

func (m *mockStatsRepo) CountJobs(_ context.Context, status string) (int64, error) {
	if status == "" {
		return m.allJobs, m.err
	}
	return m.activeJobs, m.err
}

func (m *mockStatsRepo) CountApplications(_ context.Context) (int64, error) {
	return m.applications, m.err
}

func (m *mockStatsRepo) ApplicationsByStage(_ context.Context) ([]repository.GroupCount, error) {
	return m.byStage, m.err
}

func (m *mockStatsRepo) StudentsByGraduationYear(_ context.Context) ([]repository.YearCount, error) {
	return m.byYear, m.err
}

func (m *mockStatsRepo) StudentsByDepartment(_ context.Context, limit int) ([]repository.GroupCount, error) {
	if limit > 0 && len(m.byDept) > limit {
		return m.byDept[:limit], m.err
	}
	return m.byDept, m.err
}

// ── 辅助函数 ──

func paginate[T any](items []T, page repository.Page) []T {
	if page.Offset >= len(items) {
		return nil
	}
	items = items[page.Offset:]
	if page.Limit > 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}

func anyOf(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
