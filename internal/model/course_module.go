package model

// CourseModule 课程章节表，对应 course_modules，(course_id, sort_order) 唯一
type CourseModule struct {
	ModuleID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"module_id"`
	CourseID    string `gorm:"type:uuid;not null;index"                       json:"course_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	SortOrder   int    `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel

	Lessons []Lesson `gorm:"foreignKey:ModuleID;references:ModuleID" json:"lessons,omitempty"`
}

// TableName 指定表名
func (CourseModule) TableName() string { return "course_modules" }
