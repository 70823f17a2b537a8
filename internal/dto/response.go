package dto

import "time"

// TimeLayout 响应中时间戳的统一格式
const TimeLayout = "2006-01-02T15:04:05Z"

// FormatTime 将时间格式化为 UTC 文本
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// FormatTimePtr 可空时间格式化，nil 返回 nil
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
