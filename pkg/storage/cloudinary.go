package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"placement-portal/backend/config"
)

// CloudinaryStorage 上传到 Cloudinary
// Key 格式为 "<resource_type>:<public_id>"，删除时需要资源类型
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewCloudinaryStorage 创建 Cloudinary 存储
func NewCloudinaryStorage(cfg *config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("初始化 Cloudinary 失败: %w", err)
	}
	logger.Info("Cloudinary 存储已启用", zap.String("cloud", cfg.CloudName))
	return &CloudinaryStorage{cld: cld, folder: cfg.Folder, logger: logger}, nil
}

func (s *CloudinaryStorage) Put(ctx context.Context, folder, ext string, r io.Reader, size int64, contentType string) (*Object, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       path.Join(s.folder, cleanFolder(folder)),
		PublicID:     uuid.New().String() + resourceSuffix(contentType, ext),
		ResourceType: resourceType(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("上传 Cloudinary 失败: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("上传 Cloudinary 失败: %s", res.Error.Message)
	}

	if res.Bytes > 0 {
		size = int64(res.Bytes)
	}
	return &Object{
		URL:         res.SecureURL,
		Key:         res.ResourceType + ":" + res.PublicID,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	rt, publicID, ok := strings.Cut(key, ":")
	if !ok {
		rt, publicID = "image", key
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: rt,
	})
	if err != nil {
		return fmt.Errorf("删除 Cloudinary 资源失败: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("删除 Cloudinary 资源失败: %s", res.Error.Message)
	}
	return nil
}

// resourceType 图片走 image，其余文档走 raw
func resourceType(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "image"
	}
	return "raw"
}

// raw 资源的 public_id 需要带扩展名才能以正确类型下载
func resourceSuffix(contentType, ext string) string {
	if resourceType(contentType) == "raw" {
		return ext
	}
	return ""
}
