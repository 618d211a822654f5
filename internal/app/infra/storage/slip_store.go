package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalSlipStore 转账凭证图片本地存储
// 压缩与尺寸规范化由独立的图片处理服务离线完成，这里只负责落盘
type LocalSlipStore struct {
	dir string
}

// NewLocalSlipStore 创建本地凭证存储
func NewLocalSlipStore(dir string) (*LocalSlipStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slip dir failed: %w", err)
	}
	return &LocalSlipStore{dir: dir}, nil
}

// Save 保存凭证图片，返回存储路径
func (s *LocalSlipStore) Save(ctx context.Context, orderNumber, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported slip image type: %s", ext)
	}

	name := fmt.Sprintf("%s_%s%s", orderNumber, uuid.New().String(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create slip file failed: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write slip file failed: %w", err)
	}

	return path, nil
}
