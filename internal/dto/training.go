package dto

// ── 教练 ──

// CreateTrainerRequest 创建教练请求
type CreateTrainerRequest struct {
	Name           string `json:"name"           binding:"required,max=100"`
	Email          string `json:"email"          binding:"required,email,max=120"`
	Specialization string `json:"specialization" binding:"omitempty,max=100"`
}

// TrainerResponse 教练信息
type TrainerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// ── 训练计划 ──

// CreatePlanRequest 创建周训练计划请求
// 必填项与日期格式在 Service 层校验，以返回统一的 ValidationError
type CreatePlanRequest struct {
	UserID     string        `json:"user_id"`
	WeekNumber int           `json:"week_number"`
	StartDate  string        `json:"start_date"` // YYYY-MM-DD
	EndDate    string        `json:"end_date"`   // YYYY-MM-DD
	TrainerID  *string       `json:"trainer_id"`
	Workouts   []WorkoutSpec `json:"workouts"`
}

// WorkoutSpec 计划内单次训练
type WorkoutSpec struct {
	DayOfWeek       int            `json:"day_of_week"` // 0=周一 … 6=周日
	WorkoutName     string         `json:"workout_name"`
	Description     string         `json:"description"`
	DurationMinutes *int           `json:"duration_minutes"`
	Exercises       []ExerciseSpec `json:"exercises"`
}

// ExerciseSpec 训练动作，列表顺序即 order_index
type ExerciseSpec struct {
	ExerciseName    string `json:"exercise_name"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	DurationSeconds *int   `json:"duration_seconds"`
	Notes           string `json:"notes"`
}

// AssignTrainerRequest 指派教练请求
type AssignTrainerRequest struct {
	TrainerID string `json:"trainer_id" binding:"required"`
}

// PlanHistoryRequest 历史计划查询参数
type PlanHistoryRequest struct {
	UserID string `form:"user_id"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

// PlanResponse 训练计划详情
type PlanResponse struct {
	ID                  string                 `json:"id"`
	UserID              string                 `json:"user_id"`
	WeekNumber          int                    `json:"week_number"`
	StartDate           string                 `json:"start_date"`
	EndDate             string                 `json:"end_date"`
	MotivationalMessage string                 `json:"motivational_message"`
	Trainer             *TrainerResponse       `json:"trainer,omitempty"`
	Workouts            []WorkoutResponse      `json:"workouts"`
	Summary             *WeeklySummaryResponse `json:"summary,omitempty"`
	CreatedAt           string                 `json:"created_at"`
	UpdatedAt           string                 `json:"updated_at"`
}

// ── 训练课与动作 ──

// SetWorkoutCompletionRequest 标记训练完成状态，completed 缺省为 true
type SetWorkoutCompletionRequest struct {
	Completed *bool `json:"completed"`
}

// WorkoutResponse 训练课信息
type WorkoutResponse struct {
	ID              string             `json:"id"`
	PlanID          string             `json:"plan_id"`
	DayOfWeek       int                `json:"day_of_week"`
	WorkoutName     string             `json:"workout_name"`
	Description     string             `json:"description,omitempty"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	Completed       bool               `json:"completed"`
	CompletedAt     *string            `json:"completed_at"`
	Exercises       []ExerciseResponse `json:"exercises"`
}

// ExerciseResponse 训练动作信息
type ExerciseResponse struct {
	ID              string `json:"id"`
	WorkoutID       string `json:"workout_id"`
	ExerciseName    string `json:"exercise_name"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
	Notes           string `json:"notes,omitempty"`
	OrderIndex      int    `json:"order_index"`
}

// LogExerciseRequest 记录动作完成情况
type LogExerciseRequest struct {
	SetsCompleted   *int   `json:"sets_completed"   binding:"omitempty,min=0"`
	RepsCompleted   *int   `json:"reps_completed"   binding:"omitempty,min=0"`
	DurationSeconds *int   `json:"duration_seconds" binding:"omitempty,min=0"`
	Notes           string `json:"notes"            binding:"omitempty,max=2000"`
}

// HistoryLimitRequest 记录查询条数
type HistoryLimitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// CompletionLogResponse 动作完成记录
type CompletionLogResponse struct {
	ID                       string `json:"id"`
	ExerciseID               string `json:"exercise_id"`
	UserID                   string `json:"user_id"`
	CompletedAt              string `json:"completed_at"`
	SetsCompleted            *int   `json:"sets_completed,omitempty"`
	RepsCompleted            *int   `json:"reps_completed,omitempty"`
	DurationCompletedSeconds *int   `json:"duration_completed_seconds,omitempty"`
	Notes                    string `json:"notes,omitempty"`
}

// ── 周汇总 ──

// WeeklySummaryResponse 周训练汇总
type WeeklySummaryResponse struct {
	ID                   string  `json:"id"`
	PlanID               string  `json:"plan_id"`
	TotalWorkouts        int     `json:"total_workouts"`
	CompletedWorkouts    int     `json:"completed_workouts"`
	TotalExercises       int     `json:"total_exercises"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`
	TrainerFeedback      string  `json:"trainer_feedback"`
	GeneratedAt          string  `json:"generated_at"`
}
