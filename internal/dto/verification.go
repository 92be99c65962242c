package dto

// ── 材料认证 DTO ──

// SubmitVerificationRequest 提交认证材料
type SubmitVerificationRequest struct {
	DocumentType string `json:"document_type" binding:"required,oneof=resume transcript id-proof certificate enrollment other"`
	DocumentName string `json:"document_name" binding:"required,max=200"`
	DocumentURL  string `json:"document_url"  binding:"required,http_url"`
	FileSize     int64  `json:"file_size"     binding:"omitempty,min=0"`
	FileType     string `json:"file_type"     binding:"omitempty,max=100"`
}

// ReviewVerificationRequest 审核认证材料
type ReviewVerificationRequest struct {
	Status  string `json:"status"  binding:"required,oneof=approved rejected resubmit-required"`
	Remarks string `json:"remarks" binding:"omitempty,max=500"`
}

// VerificationQueueRequest 审核队列参数
type VerificationQueueRequest struct {
	PaginationRequest
	Status       string `form:"status"        binding:"omitempty,oneof=pending approved rejected resubmit-required"`
	DocumentType string `form:"document_type" binding:"omitempty,oneof=resume transcript id-proof certificate enrollment other"`
}

// VerificationResponse 认证记录响应
type VerificationResponse struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	DocumentType string     `json:"document_type"`
	DocumentName string     `json:"document_name"`
	DocumentURL  string     `json:"document_url"`
	Status       string     `json:"status"`
	Remarks      string     `json:"remarks"`
	ReviewedBy   *string    `json:"reviewed_by"`
	ReviewedAt   *string    `json:"reviewed_at"`
	SubmittedAt  string     `json:"submitted_at"`
	DaysPending  int        `json:"days_pending"`
	FileSize     int64      `json:"file_size,omitempty"`
	FileType     string     `json:"file_type,omitempty"`
	Student      *UserBrief `json:"student,omitempty"`
}
