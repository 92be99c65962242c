package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStorage 将文件保存在本地磁盘，由 HTTP 静态路由对外提供
type LocalStorage struct {
	basePath string
	baseURL  string
	logger   *zap.Logger
}

// NewLocalStorage 创建本地存储并确保根目录存在
func NewLocalStorage(basePath, baseURL string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败 %s: %w", basePath, err)
	}
	logger.Info("本地存储目录就绪", zap.String("path", basePath))

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// BasePath 返回存储根目录
func (s *LocalStorage) BasePath() string { return s.basePath }

func (s *LocalStorage) Put(_ context.Context, folder, ext string, r io.Reader, _ int64, contentType string) (*Object, error) {
	folder = cleanFolder(folder)
	dir := filepath.Join(s.basePath, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建子目录失败: %w", err)
	}

	name := uuid.New().String() + ext
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("创建目标文件失败: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, r)
	if err != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}

	key := filepath.ToSlash(filepath.Join(folder, name))
	s.logger.Info("文件已保存", zap.String("key", key), zap.Int64("size", n))

	return &Object{
		URL:         s.baseURL + "/" + key,
		Key:         key,
		Size:        n,
		ContentType: contentType,
	}, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return fmt.Errorf("非法的文件键: %s", key)
	}

	path := filepath.Join(s.basePath, clean)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

// cleanFolder 去掉 ../ 等路径片段，保证落在根目录之内
func cleanFolder(folder string) string {
	f := filepath.Clean("/" + folder)
	return strings.TrimPrefix(f, "/")
}
