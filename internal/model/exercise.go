package model

// Exercise 训练动作表，对应 exercises
// OrderIndex 在同一 Workout 内唯一，按创建时的输入顺序从 0 开始
type Exercise struct {
	ExerciseID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exercise_id"`
	WorkoutID       string `gorm:"type:uuid;not null;index"                       json:"workout_id"`
	ExerciseName    string `gorm:"type:varchar(100);not null"                     json:"exercise_name"`
	Sets            int    `gorm:"not null;default:0"                             json:"sets"`
	Reps            int    `gorm:"not null;default:0"                             json:"reps"`
	DurationSeconds *int   `                                                      json:"duration_seconds,omitempty"`
	Notes           string `gorm:"type:text"                                      json:"notes,omitempty"`
	OrderIndex      int    `gorm:"not null;default:0"                             json:"order_index"`
	BaseModel

	Video *ExerciseVideo `gorm:"foreignKey:ExerciseID;references:ExerciseID" json:"video,omitempty"`
}

// TableName 指定表名
func (Exercise) TableName() string { return "exercises" }
