package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"progress-hub/backend/config"
)

// 预签名只做本地签名计算，不访问网络
func TestS3Storage_PresignUpload(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), &config.StorageConfig{
		Enabled:         true,
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "media",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewS3Storage 失败: %v", err)
	}

	url, err := fs.PresignUpload(context.Background(), "exercises/e-1/clip.mp4", "video/mp4", time.Minute)
	if err != nil {
		t.Fatalf("PresignUpload 失败: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:9000/media/exercises/e-1/clip.mp4") {
		t.Errorf("期望 path-style URL，实际: %s", url)
	}
	if !strings.Contains(url, "X-Amz-Signature=") {
		t.Errorf("URL 应包含签名参数，实际: %s", url)
	}

	dl, err := fs.PresignDownload(context.Background(), "exercises/e-1/clip.mp4", 0)
	if err != nil {
		t.Fatalf("PresignDownload 失败: %v", err)
	}
	if !strings.Contains(dl, "X-Amz-Expires=900") {
		t.Errorf("默认有效期应为 15 分钟，实际: %s", dl)
	}
}

func TestDisabledStorage(t *testing.T) {
	fs := Disabled()
	if _, err := fs.PresignUpload(context.Background(), "k", "video/mp4", 0); !errors.Is(err, ErrStorageDisabled) {
		t.Errorf("期望 ErrStorageDisabled，实际: %v", err)
	}
	if err := fs.DeleteObject(context.Background(), "k"); !errors.Is(err, ErrStorageDisabled) {
		t.Errorf("期望 ErrStorageDisabled，实际: %v", err)
	}
}
