package model

// 课程状态
const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

// Course 课程表，对应 courses
type Course struct {
	CourseID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Title        string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string `gorm:"type:text"                                      json:"description,omitempty"`
	InstructorID string `gorm:"type:varchar(64)"                               json:"instructor_id,omitempty"`
	Status       string `gorm:"type:varchar(20);not null;default:draft"        json:"status"`
	ThumbnailURL string `gorm:"type:varchar(500)"                              json:"thumbnail_url,omitempty"`
	BaseModel

	Modules []CourseModule `gorm:"foreignKey:CourseID;references:CourseID" json:"modules,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
