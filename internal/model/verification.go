package model

import (
	"time"

	"gorm.io/datatypes"
)

// 认证材料类型
const (
	DocResume      = "resume"
	DocTranscript  = "transcript"
	DocIDProof     = "id-proof"
	DocCertificate = "certificate"
	DocEnrollment  = "enrollment"
	DocOther       = "other"
)

// 认证状态
const (
	VerificationPending          = "pending"
	VerificationApproved         = "approved"
	VerificationRejected         = "rejected"
	VerificationResubmitRequired = "resubmit-required"
)

// VerificationMetadata 上传附带信息
type VerificationMetadata struct {
	FileSize     int64  `json:"file_size,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	UploadedFrom string `json:"uploaded_from,omitempty"`
}

// Verification 材料认证表 — 对应 verifications
type Verification struct {
	VerificationID string                                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID      string                                 `gorm:"type:uuid;not null;index"                       json:"student_id"`
	DocumentType   string                                 `gorm:"type:varchar(20);not null"                      json:"document_type"`
	DocumentName   string                                 `gorm:"type:varchar(200);not null"                     json:"document_name"`
	DocumentURL    string                                 `gorm:"column:document_url;type:text;not null"         json:"document_url"`
	Status         string                                 `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Remarks        string                                 `gorm:"type:varchar(500);not null;default:''"          json:"remarks"`
	ReviewedBy     *string                                `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time                             `json:"reviewed_at,omitempty"`
	SubmittedAt    time.Time                              `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	Metadata       datatypes.JSONType[VerificationMetadata] `gorm:"type:jsonb;not null;default:'{}'"             json:"metadata"`
	BaseModel

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (Verification) TableName() string { return "verifications" }

// DaysPending 待审天数，非 pending 为 0
func (v *Verification) DaysPending(now time.Time) int {
	if v.Status != VerificationPending {
		return 0
	}
	d := now.Sub(v.SubmittedAt)
	if d <= 0 {
		return 0
	}
	days := int(d.Hours() / 24)
	if d > time.Duration(days)*24*time.Hour {
		days++
	}
	return days
}
