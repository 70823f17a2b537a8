package dto

// VideoUploadURLRequest 申请视频直传 URL
type VideoUploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// VideoUploadURLResponse 预签名上传地址，客户端以 PUT 上传并带上相同的 Content-Type
type VideoUploadURLResponse struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	ExpiresIn int    `json:"expires_in"` // 秒
}

// SaveExerciseVideoRequest 保存动作视频元数据，object_key 与 video_url 至少提供一个
type SaveExerciseVideoRequest struct {
	ObjectKey       string `json:"object_key"       binding:"omitempty,max=500"`
	VideoURL        string `json:"video_url"        binding:"omitempty,url,max=500"`
	ThumbnailURL    string `json:"thumbnail_url"    binding:"omitempty,url,max=500"`
	DurationSeconds *int   `json:"duration_seconds" binding:"omitempty,min=0"`
	VideoTitle      string `json:"video_title"      binding:"omitempty,max=200"`
}

// ExerciseVideoResponse 动作视频信息，PlaybackURL 为临时播放地址
type ExerciseVideoResponse struct {
	ExerciseID      string `json:"exercise_id"`
	ObjectKey       string `json:"object_key,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
	VideoTitle      string `json:"video_title,omitempty"`
	PlaybackURL     string `json:"playback_url,omitempty"`
}

// AttachLessonVideoRequest 绑定已上传的课时视频
type AttachLessonVideoRequest struct {
	ObjectKey     string `json:"object_key"     binding:"required,max=500"`
	VideoDuration *int   `json:"video_duration" binding:"omitempty,min=0"`
}

// LessonVideoURLResponse 课时视频播放地址
type LessonVideoURLResponse struct {
	LessonID    string `json:"lesson_id"`
	PlaybackURL string `json:"playback_url"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}
