package model

// 先修条件类型
const (
	PrerequisiteTypeCourse = "course"
	PrerequisiteTypeModule = "module"
	PrerequisiteTypeLesson = "lesson"
)

// Prerequisite 课程先修条件，对应 prerequisites
// 按 PrerequisiteType 恰好引用一个目标实体
type Prerequisite struct {
	PrerequisiteID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"prerequisite_id"`
	CourseID             string  `gorm:"type:uuid;not null;index"                       json:"course_id"`
	PrerequisiteType     string  `gorm:"type:varchar(10);not null"                      json:"prerequisite_type"`
	PrerequisiteCourseID *string `gorm:"type:uuid"                                      json:"prerequisite_course_id,omitempty"`
	PrerequisiteModuleID *string `gorm:"type:uuid"                                      json:"prerequisite_module_id,omitempty"`
	PrerequisiteLessonID *string `gorm:"type:uuid"                                      json:"prerequisite_lesson_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Prerequisite) TableName() string { return "prerequisites" }

// TargetID 返回与类型匹配的目标实体 ID
func (p *Prerequisite) TargetID() string {
	var id *string
	switch p.PrerequisiteType {
	case PrerequisiteTypeCourse:
		id = p.PrerequisiteCourseID
	case PrerequisiteTypeModule:
		id = p.PrerequisiteModuleID
	case PrerequisiteTypeLesson:
		id = p.PrerequisiteLessonID
	}
	if id == nil {
		return ""
	}
	return *id
}
