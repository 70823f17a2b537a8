package model

import "time"

// Workout 训练课表，对应 workouts
// DayOfWeek: 0=周一 … 6=周日
type Workout struct {
	WorkoutID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workout_id"`
	PlanID          string     `gorm:"type:uuid;not null;index"                       json:"plan_id"`
	DayOfWeek       int        `gorm:"type:smallint;not null"                         json:"day_of_week"`
	WorkoutName     string     `gorm:"type:varchar(100);not null"                     json:"workout_name"`
	Description     string     `gorm:"type:text"                                      json:"description,omitempty"`
	DurationMinutes *int       `                                                      json:"duration_minutes,omitempty"`
	Completed       bool       `gorm:"not null;default:false"                         json:"completed"`
	CompletedAt     *time.Time `                                                      json:"completed_at,omitempty"`
	BaseModel

	Exercises []Exercise `gorm:"foreignKey:WorkoutID;references:WorkoutID" json:"exercises,omitempty"`
}

// TableName 指定表名
func (Workout) TableName() string { return "workouts" }
