package model

// ExerciseVideo 动作示范视频元数据，对应 exercise_videos（每个动作至多一条）
type ExerciseVideo struct {
	VideoID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"video_id"`
	ExerciseID      string `gorm:"type:uuid;not null;uniqueIndex"                 json:"exercise_id"`
	ObjectKey       string `gorm:"type:varchar(500)"                              json:"object_key,omitempty"`
	VideoURL        string `gorm:"type:varchar(500)"                              json:"video_url,omitempty"`
	ThumbnailURL    string `gorm:"type:varchar(500)"                              json:"thumbnail_url,omitempty"`
	DurationSeconds *int   `                                                      json:"duration_seconds,omitempty"`
	VideoTitle      string `gorm:"type:varchar(200)"                              json:"video_title,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ExerciseVideo) TableName() string { return "exercise_videos" }
