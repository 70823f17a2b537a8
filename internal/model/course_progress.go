package model

import "time"

// CourseProgress 课程学习进度聚合，对应 course_progress，(user_id, course_id) 唯一
// 计数字段由课时进度变更触发重新计算
type CourseProgress struct {
	ProgressID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"progress_id"`
	UserID               string     `gorm:"type:varchar(64);not null"                      json:"user_id"`
	CourseID             string     `gorm:"type:uuid;not null"                             json:"course_id"`
	LessonsCompleted     int        `gorm:"not null;default:0"                             json:"lessons_completed"`
	TotalLessons         int        `gorm:"not null;default:0"                             json:"total_lessons"`
	CompletionPercentage int        `gorm:"not null;default:0"                             json:"completion_percentage"`
	StartedAt            time.Time  `gorm:"not null"                                       json:"started_at"`
	CompletedAt          *time.Time `                                                      json:"completed_at,omitempty"`
	LastAccessedAt       time.Time  `gorm:"not null"                                       json:"last_accessed_at"`
	BaseModel
}

// TableName 指定表名
func (CourseProgress) TableName() string { return "course_progress" }

// Recalculate 以整数截断计算完成百分比，总课时为 0 时为 0
func (p *CourseProgress) Recalculate() {
	if p.TotalLessons <= 0 {
		p.CompletionPercentage = 0
		return
	}
	pct := p.LessonsCompleted * 100 / p.TotalLessons
	if pct > 100 {
		pct = 100
	}
	p.CompletionPercentage = pct
}
