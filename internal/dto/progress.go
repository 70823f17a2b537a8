package dto

// ── 报名 ──

// EnrollmentResponse 选课记录
type EnrollmentResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	CourseID    string  `json:"course_id"`
	Status      string  `json:"status"`
	EnrolledAt  string  `json:"enrolled_at"`
	StartedAt   *string `json:"started_at"`
	CompletedAt *string `json:"completed_at"`
}

// EnrollmentStatusResponse 报名状态
type EnrollmentStatusResponse struct {
	IsEnrolled       bool    `json:"is_enrolled"`
	EnrollmentStatus *string `json:"enrollment_status"`
}

// UnmetPrerequisite 未满足的先修条件
type UnmetPrerequisite struct {
	PrerequisiteID string `json:"prerequisite_id"`
	Type           string `json:"type"`
	Description    string `json:"description"`
}

// PrerequisiteCheckResponse 先修条件检查结果
type PrerequisiteCheckResponse struct {
	AllMet             bool                `json:"all_met"`
	UnmetPrerequisites []UnmetPrerequisite `json:"unmet_prerequisites"`
}

// ── 课时进度 ──

// StartLessonRequest 开始学习课时
type StartLessonRequest struct {
	LessonID string `json:"lesson_id" binding:"required"`
}

// UpdateWatchProgressRequest 更新观看进度，缺省字段沿用当前值
type UpdateWatchProgressRequest struct {
	WatchDuration   *int `json:"watch_duration"   binding:"omitempty,min=0"`
	WatchPercentage *int `json:"watch_percentage"`
}

// LessonProgressResponse 课时进度
type LessonProgressResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	LessonID        string  `json:"lesson_id"`
	IsViewed        bool    `json:"is_viewed"`
	WatchDuration   int     `json:"watch_duration"`
	WatchPercentage int     `json:"watch_percentage"`
	StartedAt       *string `json:"started_at"`
	CompletedAt     *string `json:"completed_at"`
	LastAccessedAt  string  `json:"last_accessed_at"`
}

// ── 课程进度 ──

// CourseProgressResponse 课程进度
type CourseProgressResponse struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"user_id"`
	CourseID             string  `json:"course_id"`
	LessonsCompleted     int     `json:"lessons_completed"`
	TotalLessons         int     `json:"total_lessons"`
	CompletionPercentage int     `json:"completion_percentage"`
	StartedAt            string  `json:"started_at"`
	CompletedAt          *string `json:"completed_at"`
	LastAccessedAt       string  `json:"last_accessed_at"`
}
