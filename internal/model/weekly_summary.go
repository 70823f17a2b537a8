package model

import "time"

// WeeklySummary 周训练汇总，对应 weekly_summaries（每个计划一条，可重复生成）
type WeeklySummary struct {
	SummaryID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"summary_id"`
	PlanID               string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"plan_id"`
	TotalWorkouts        int       `gorm:"not null;default:0"                             json:"total_workouts"`
	CompletedWorkouts    int       `gorm:"not null;default:0"                             json:"completed_workouts"`
	TotalExercises       int       `gorm:"not null;default:0"                             json:"total_exercises"`
	CompletionPercentage float64   `gorm:"type:numeric(5,2);not null;default:0"           json:"completion_percentage"`
	TotalDurationMinutes int       `gorm:"not null;default:0"                             json:"total_duration_minutes"`
	TrainerFeedback      string    `gorm:"type:text"                                      json:"trainer_feedback"`
	GeneratedAt          time.Time `gorm:"not null"                                       json:"generated_at"`
	BaseModel
}

// TableName 指定表名
func (WeeklySummary) TableName() string { return "weekly_summaries" }
