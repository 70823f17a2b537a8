package model

import "time"

// LessonProgress 课时学习进度，对应 lesson_progress，(user_id, lesson_id) 唯一
// WatchPercentage ∈ [0,100]，等于 100 视为完成
type LessonProgress struct {
	ProgressID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"progress_id"`
	UserID          string     `gorm:"type:varchar(64);not null"                      json:"user_id"`
	LessonID        string     `gorm:"type:uuid;not null"                             json:"lesson_id"`
	IsViewed        bool       `gorm:"not null;default:false"                         json:"is_viewed"`
	WatchDuration   int        `gorm:"not null;default:0"                             json:"watch_duration"`
	WatchPercentage int        `gorm:"not null;default:0"                             json:"watch_percentage"`
	StartedAt       *time.Time `                                                      json:"started_at,omitempty"`
	CompletedAt     *time.Time `                                                      json:"completed_at,omitempty"`
	LastAccessedAt  time.Time  `gorm:"not null"                                       json:"last_accessed_at"`
	BaseModel
}

// TableName 指定表名
func (LessonProgress) TableName() string { return "lesson_progress" }

// IsCompleted 观看进度达到 100%
func (p *LessonProgress) IsCompleted() bool {
	return p.WatchPercentage >= 100
}
