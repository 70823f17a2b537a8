package handler

import (
	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
)

// ProgressHandler 选课记录、课时进度与课程进度 HTTP 处理器
// 非管理员只能访问自己的记录，越权由 Service 层返回 ErrForbidden
type ProgressHandler struct {
	progressSvc service.CourseProgressService
}

// NewProgressHandler 创建 ProgressHandler
func NewProgressHandler(progressSvc service.CourseProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// ────────────────────── 选课记录 ──────────────────────

// ListEnrollments 选课记录列表
// GET /api/v1/enrollments
func (h *ProgressHandler) ListEnrollments(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.ListEnrollments(c.Request.Context(), userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetEnrollment 选课记录详情
// GET /api/v1/enrollments/:id
func (h *ProgressHandler) GetEnrollment(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.GetEnrollment(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// MarkEnrollmentStarted 标记开始学习
// POST /api/v1/enrollments/:id/mark-started
func (h *ProgressHandler) MarkEnrollmentStarted(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.MarkEnrollmentStarted(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// MarkEnrollmentCompleted 标记课程学完
// POST /api/v1/enrollments/:id/mark-completed
func (h *ProgressHandler) MarkEnrollmentCompleted(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.MarkEnrollmentCompleted(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Unenroll 退课
// DELETE /api/v1/enrollments/:id
func (h *ProgressHandler) Unenroll(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.progressSvc.Unenroll(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── 课时进度 ──────────────────────

// StartLesson 开始学习课时，新建返回 201，已存在返回 200
// POST /api/v1/lesson-progress
func (h *ProgressHandler) StartLesson(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.StartLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, created, err := h.progressSvc.StartLesson(c.Request.Context(), userID, req.LessonID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if created {
		response.Created(c, result)
		return
	}
	response.OK(c, result)
}

// ListLessonProgress 课时进度列表
// GET /api/v1/lesson-progress
func (h *ProgressHandler) ListLessonProgress(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.ListLessonProgress(c.Request.Context(), userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetLessonProgress 课时进度详情
// GET /api/v1/lesson-progress/:id
func (h *ProgressHandler) GetLessonProgress(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.GetLessonProgress(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateWatchProgress 上报观看进度
// POST /api/v1/lesson-progress/:id/watch-progress
func (h *ProgressHandler) UpdateWatchProgress(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateWatchProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.progressSvc.UpdateWatchProgress(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// MarkLessonCompleted 标记课时完成
// POST /api/v1/lesson-progress/:id/complete
func (h *ProgressHandler) MarkLessonCompleted(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.MarkLessonCompleted(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// ────────────────────── 课程进度 ──────────────────────

// ListCourseProgress 课程进度列表
// GET /api/v1/course-progress?user_id=xxx
func (h *ProgressHandler) ListCourseProgress(c *gin.Context) {
	userID, ok := resolveTargetUser(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.ListCourseProgress(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
