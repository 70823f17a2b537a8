package model

// 课时类型
const (
	LessonTypeVideo = "video"
	LessonTypeText  = "text"
	LessonTypeQuiz  = "quiz"
)

// Lesson 课时表，对应 lessons，(module_id, sort_order) 唯一
type Lesson struct {
	LessonID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	ModuleID       string `gorm:"type:uuid;not null;index"                       json:"module_id"`
	Title          string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description    string `gorm:"type:text"                                      json:"description,omitempty"`
	SortOrder      int    `gorm:"not null;default:0"                             json:"sort_order"`
	LessonType     string `gorm:"type:varchar(10);not null;default:video"        json:"lesson_type"`
	VideoURL       string `gorm:"type:varchar(500)"                              json:"video_url,omitempty"`
	VideoObjectKey string `gorm:"type:varchar(500)"                              json:"video_object_key,omitempty"`
	VideoDuration  *int   `                                                      json:"video_duration,omitempty"` // 秒
	Content        string `gorm:"type:text"                                      json:"content,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Lesson) TableName() string { return "lessons" }
