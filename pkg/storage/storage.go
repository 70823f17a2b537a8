package storage

import (
	"context"
	"errors"
	"time"
)

// DefaultPresignedURLExpiry 预签名 URL 默认有效期
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrStorageDisabled 未启用对象存储
var ErrStorageDisabled = errors.New("对象存储未启用")

// FileStorage 对象存储接口（视频直传与播放）
type FileStorage interface {
	// PresignUpload 生成允许客户端直接 PUT 上传对象的临时 URL
	PresignUpload(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)
	// PresignDownload 生成允许客户端直接 GET 对象的临时 URL
	PresignDownload(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// disabledStorage 未配置存储时的占位实现，所有操作返回 ErrStorageDisabled
type disabledStorage struct{}

// Disabled 返回占位实现
func Disabled() FileStorage { return disabledStorage{} }

func (disabledStorage) PresignUpload(context.Context, string, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) PresignDownload(context.Context, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) DeleteObject(context.Context, string) error {
	return ErrStorageDisabled
}
