package model

import "time"

// TrainingPlan 周训练计划表，对应 training_plans
type TrainingPlan struct {
	PlanID              string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_id"`
	UserID              string    `gorm:"type:varchar(64);not null;index"                json:"user_id"`
	TrainerID           *string   `gorm:"type:uuid"                                      json:"trainer_id,omitempty"`
	WeekNumber          int       `gorm:"not null"                                       json:"week_number"`
	StartDate           time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate             time.Time `gorm:"type:date;not null"                             json:"end_date"`
	MotivationalMessage string    `gorm:"type:text"                                      json:"motivational_message"`
	BaseModel

	// 关联（按需 Preload）
	Trainer  *Trainer       `gorm:"foreignKey:TrainerID;references:TrainerID" json:"trainer,omitempty"`
	Workouts []Workout      `gorm:"foreignKey:PlanID;references:PlanID"       json:"workouts,omitempty"`
	Summary  *WeeklySummary `gorm:"foreignKey:PlanID;references:PlanID"       json:"summary,omitempty"`
}

// TableName 指定表名
func (TrainingPlan) TableName() string { return "training_plans" }

// Covers 判断计划日期范围是否包含 day（两端闭区间，按日期比较）
func (p *TrainingPlan) Covers(day time.Time) bool {
	d := TruncateToDate(day)
	return !d.Before(TruncateToDate(p.StartDate)) && !d.After(TruncateToDate(p.EndDate))
}
