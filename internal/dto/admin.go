package dto

// ── 管理端 DTO ──

// YearBucket 按毕业年份统计
type YearBucket struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// GroupBucket 按分类字段统计
type GroupBucket struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DashboardStats 管理端统计快照，每次请求实时计算
type DashboardStats struct {
	TotalStudents       int64            `json:"total_students"`
	VerifiedStudents    int64            `json:"verified_students"`
	AvgCGPA             float64          `json:"avg_cgpa"`
	ActiveJobs          int64            `json:"active_jobs"`
	TotalJobs           int64            `json:"total_jobs"`
	TotalApplications   int64            `json:"total_applications"`
	ByYear              []YearBucket     `json:"by_year"`
	ByDepartment        []GroupBucket    `json:"by_department"`
	ApplicationsByStage map[string]int64 `json:"applications_by_stage"`
}

// VerifyStudentRequest 认证开关
type VerifyStudentRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// StudentDetailResponse 学生详情（管理端）
type StudentDetailResponse struct {
	User          UserResponse           `json:"user"`
	Profile       *ProfileResponse       `json:"profile"`
	Applications  []ApplicationResponse  `json:"applications"`
	Verifications []VerificationResponse `json:"verifications"`
}

// DeleteStudentResult 级联删除结果
type DeleteStudentResult struct {
	ApplicationsDeleted  int64 `json:"applications_deleted"`
	VerificationsDeleted int64 `json:"verifications_deleted"`
	ProfileDeleted       bool  `json:"profile_deleted"`
}
