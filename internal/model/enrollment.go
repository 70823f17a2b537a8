package model

import "time"

// 报名状态
const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusDropped   = "dropped"
	EnrollmentStatusPaused    = "paused"
)

// Enrollment 选课记录，对应 enrollments，(user_id, course_id) 唯一
type Enrollment struct {
	EnrollmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	UserID       string     `gorm:"type:varchar(64);not null"                      json:"user_id"`
	CourseID     string     `gorm:"type:uuid;not null"                             json:"course_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:active"       json:"status"`
	EnrolledAt   time.Time  `gorm:"not null"                                       json:"enrolled_at"`
	StartedAt    *time.Time `                                                      json:"started_at,omitempty"`
	CompletedAt  *time.Time `                                                      json:"completed_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// IsEnrolled active / paused / completed 视为已报名
func (e *Enrollment) IsEnrolled() bool {
	switch e.Status {
	case EnrollmentStatusActive, EnrollmentStatusPaused, EnrollmentStatusCompleted:
		return true
	}
	return false
}
