package storage

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"placement-portal/backend/config"
)

// Object 已存储对象的元数据
type Object struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Storage 对象存储接口
type Storage interface {
	// Put 将内容写入 folder 下，ext 为带点的扩展名
	Put(ctx context.Context, folder, ext string, r io.Reader, size int64, contentType string) (*Object, error)
	// Delete 按 Put 返回的 Key 删除对象，对象不存在时视为成功
	Delete(ctx context.Context, key string) error
}

// New 根据配置选择存储实现
func New(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL, logger)
	case "cloudinary":
		return NewCloudinaryStorage(&cfg.Cloudinary, logger)
	default:
		return nil, fmt.Errorf("未知的存储提供方: %s", cfg.Provider)
	}
}
