package model

import "time"

// CompletionLog 动作完成记录，对应 completion_logs
// 仅追加，创建后不再修改
type CompletionLog struct {
	LogID                    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	ExerciseID               string    `gorm:"type:uuid;not null;index"                       json:"exercise_id"`
	UserID                   string    `gorm:"type:varchar(64);not null"                      json:"user_id"`
	CompletedAt              time.Time `gorm:"not null"                                       json:"completed_at"`
	SetsCompleted            *int      `                                                      json:"sets_completed,omitempty"`
	RepsCompleted            *int      `                                                      json:"reps_completed,omitempty"`
	DurationCompletedSeconds *int      `                                                      json:"duration_completed_seconds,omitempty"`
	Notes                    string    `gorm:"type:text"                                      json:"notes,omitempty"`
	CreatedAt                time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (CompletionLog) TableName() string { return "completion_logs" }
