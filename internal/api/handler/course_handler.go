package handler

import (
	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
)

// CourseHandler 课程与选课 HTTP 处理器
type CourseHandler struct {
	catalogSvc  service.CourseCatalogService
	progressSvc service.CourseProgressService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(catalogSvc service.CourseCatalogService, progressSvc service.CourseProgressService) *CourseHandler {
	return &CourseHandler{catalogSvc: catalogSvc, progressSvc: progressSvc}
}

// ────────────────────── 课程 ──────────────────────

// Create 创建课程，缺省为草稿
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.CreateCourse(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// List 课程列表，非管理员仅可见已发布课程
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.catalogSvc.ListCourses(c.Request.Context(), role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 课程详情（含章节、课时与先修条件）
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.catalogSvc.GetCourse(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 更新课程
// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.UpdateCourse(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除课程
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.catalogSvc.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── 选课 ──────────────────────

// Enroll 报名课程，首次报名返回 201，已报名返回 200
// POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, created, err := h.progressSvc.Enroll(c.Request.Context(), userID, c.Param("id"))
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

// EnrollmentStatus 调用方在该课程的报名状态
// GET /api/v1/courses/:id/enrollment-status
func (h *CourseHandler) EnrollmentStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.EnrollmentStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// PrerequisitesMet 检查先修条件
// GET /api/v1/courses/:id/prerequisites-met
func (h *CourseHandler) PrerequisitesMet(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.PrerequisitesMet(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Progress 课程学习进度
// GET /api/v1/courses/:id/progress?user_id=xxx
func (h *CourseHandler) Progress(c *gin.Context) {
	userID, ok := resolveTargetUser(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.GetCourseProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// RecomputeProgress 重新计算调用方的课程进度
// POST /api/v1/courses/:id/progress/recompute
func (h *CourseHandler) RecomputeProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	courseID := c.Param("id")

	if err := h.progressSvc.RecomputeCourseProgress(c.Request.Context(), userID, courseID); err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := h.progressSvc.GetCourseProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
