package dto

// ── 课程 ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Title        string `json:"title"         binding:"required,max=200"`
	Description  string `json:"description"`
	Status       string `json:"status"        binding:"omitempty,oneof=draft published archived"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url,max=500"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Title        *string `json:"title"         binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	Status       *string `json:"status"        binding:"omitempty,oneof=draft published archived"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"omitempty,max=500"`
}

// CourseResponse 课程信息
type CourseResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	InstructorID string `json:"instructor_id,omitempty"`
	Status       string `json:"status"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CourseDetailResponse 课程详情（含章节、课时与先修条件）
type CourseDetailResponse struct {
	CourseResponse
	TotalLessons  int                    `json:"total_lessons"`
	Modules       []ModuleResponse       `json:"modules"`
	Prerequisites []PrerequisiteResponse `json:"prerequisites"`
}

// ── 章节 ──

// CreateModuleRequest 创建章节请求
type CreateModuleRequest struct {
	CourseID    string `json:"course_id"   binding:"required"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"  binding:"min=0"`
}

// UpdateModuleRequest 更新章节请求
type UpdateModuleRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"  binding:"omitempty,min=0"`
}

// ModuleListRequest 章节列表查询参数
type ModuleListRequest struct {
	CourseID string `form:"course_id" binding:"omitempty,uuid"`
}

// ModuleResponse 章节信息
type ModuleResponse struct {
	ID          string           `json:"id"`
	CourseID    string           `json:"course_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	SortOrder   int              `json:"sort_order"`
	Lessons     []LessonResponse `json:"lessons,omitempty"`
}

// ── 课时 ──

// CreateLessonRequest 创建课时请求
type CreateLessonRequest struct {
	ModuleID      string `json:"module_id"      binding:"required"`
	Title         string `json:"title"          binding:"required,max=200"`
	Description   string `json:"description"`
	SortOrder     int    `json:"sort_order"     binding:"min=0"`
	LessonType    string `json:"lesson_type"    binding:"omitempty,oneof=video text quiz"`
	VideoURL      string `json:"video_url"      binding:"omitempty,url,max=500"`
	VideoDuration *int   `json:"video_duration" binding:"omitempty,min=0"`
	Content       string `json:"content"`
}

// UpdateLessonRequest 更新课时请求
type UpdateLessonRequest struct {
	Title         *string `json:"title"          binding:"omitempty,min=1,max=200"`
	Description   *string `json:"description"`
	SortOrder     *int    `json:"sort_order"     binding:"omitempty,min=0"`
	LessonType    *string `json:"lesson_type"    binding:"omitempty,oneof=video text quiz"`
	VideoURL      *string `json:"video_url"      binding:"omitempty,max=500"`
	VideoDuration *int    `json:"video_duration" binding:"omitempty,min=0"`
	Content       *string `json:"content"`
}

// LessonListRequest 课时列表查询参数
type LessonListRequest struct {
	ModuleID string `form:"module_id" binding:"omitempty,uuid"`
}

// LessonResponse 课时信息
type LessonResponse struct {
	ID            string `json:"id"`
	ModuleID      string `json:"module_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	SortOrder     int    `json:"sort_order"`
	LessonType    string `json:"lesson_type"`
	VideoURL      string `json:"video_url,omitempty"`
	HasVideo      bool   `json:"has_video"`
	VideoDuration *int   `json:"video_duration,omitempty"`
	Content       string `json:"content,omitempty"`
}

// ── 先修条件 ──

// CreatePrerequisiteRequest 创建先修条件请求，目标 ID 需与类型匹配
type CreatePrerequisiteRequest struct {
	CourseID             string  `json:"course_id"              binding:"required"`
	PrerequisiteType     string  `json:"prerequisite_type"      binding:"required,oneof=course module lesson"`
	PrerequisiteCourseID *string `json:"prerequisite_course_id"`
	PrerequisiteModuleID *string `json:"prerequisite_module_id"`
	PrerequisiteLessonID *string `json:"prerequisite_lesson_id"`
}

// PrerequisiteListRequest 先修条件列表查询参数
type PrerequisiteListRequest struct {
	CourseID string `form:"course_id" binding:"required,uuid"`
}

// PrerequisiteResponse 先修条件信息，Description 为目标实体标题
type PrerequisiteResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Type        string `json:"type"`
	TargetID    string `json:"target_id"`
	Description string `json:"description"`
}
