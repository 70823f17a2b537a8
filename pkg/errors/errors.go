package errors

import (
	"errors"
	"fmt"
)

// ErrForbidden 调用方无权操作目标资源（例如他人的学习进度）
var ErrForbidden = errors.New("无权操作该资源")

// ── 校验错误 ──

// ValidationError 请求参数缺失或格式错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "参数校验失败: " + e.Message
	}
	return fmt.Sprintf("参数校验失败: %s %s", e.Field, e.Message)
}

// NewValidation 创建 ValidationError
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ── 资源不存在 ──

// NotFoundError 引用的实体不存在，Resource 为实体类型，ID 为未能解析的主键
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s 不存在: %s", e.Resource, e.ID)
}

// NewNotFound 创建 NotFoundError
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ── 先修条件 ──

// PrerequisiteNotMetError 报名时存在未满足的先修条件
type PrerequisiteNotMetError struct {
	PrerequisiteID string
	Type           string
	Description    string
}

func (e *PrerequisiteNotMetError) Error() string {
	return fmt.Sprintf("先修条件未满足: %s %q", e.Type, e.Description)
}

// ── 判定辅助 ──

// IsNotFound 判断错误链中是否包含 NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation 判断错误链中是否包含 ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
