package storage

import (
	"bytes"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmptyFile    = errors.New("上传文件为空")
	ErrFileTooLarge = errors.New("文件超过大小限制")
	ErrFileType     = errors.New("不支持的文件类型")
)

// Policy 上传类型与大小策略，类型以内容嗅探为准
type Policy struct {
	Name     string
	MaxBytes int64
	Allowed  []string
}

// 常用 MIME
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ImagePolicy 头像：jpeg/png/gif
func ImagePolicy(maxBytes int64) Policy {
	return Policy{Name: "image", MaxBytes: maxBytes, Allowed: []string{MimeJPEG, MimePNG, MimeGIF}}
}

// ResumePolicy 简历：pdf/doc/docx
func ResumePolicy(maxBytes int64) Policy {
	return Policy{Name: "resume", MaxBytes: maxBytes, Allowed: []string{MimePDF, MimeDOC, MimeDOCX}}
}

// DocumentPolicy 认证材料：pdf/jpeg/png
func DocumentPolicy(maxBytes int64) Policy {
	return Policy{Name: "document", MaxBytes: maxBytes, Allowed: []string{MimePDF, MimeJPEG, MimePNG}}
}

// Checked 通过校验的上传内容
type Checked struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Ext         string
}

// Check 校验声明大小、嗅探真实类型，返回可重新读取完整内容的 Reader
// declaredSize 为客户端声明的大小，未知时传 -1
func (p Policy) Check(r io.Reader, declaredSize int64) (*Checked, error) {
	if declaredSize == 0 {
		return nil, ErrEmptyFile
	}
	if p.MaxBytes > 0 && declaredSize > p.MaxBytes {
		return nil, ErrFileTooLarge
	}

	// 多读 1 字节用于判断是否超限
	limit := p.MaxBytes
	if limit <= 0 {
		limit = 1 << 62
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEmptyFile
	}
	if n > limit {
		return nil, ErrFileTooLarge
	}

	mt := mimetype.Detect(buf.Bytes())
	if !p.allows(mt) {
		return nil, ErrFileType
	}

	return &Checked{
		Reader:      bytes.NewReader(buf.Bytes()),
		Size:        n,
		ContentType: mt.String(),
		Ext:         mt.Extension(),
	}, nil
}

func (p Policy) allows(mt *mimetype.MIME) bool {
	for _, a := range p.Allowed {
		if mt.Is(a) {
			return true
		}
	}
	return false
}
