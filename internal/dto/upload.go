package dto

// ── 上传 DTO ──

// UploadResponse 上传结果
type UploadResponse struct {
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
