package handler

import (
	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
)

// CatalogHandler 章节、课时与先修条件 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CourseCatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CourseCatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ────────────────────── 章节 ──────────────────────

// CreateModule 创建章节
// POST /api/v1/modules
func (h *CatalogHandler) CreateModule(c *gin.Context) {
	var req dto.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.CreateModule(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListModules 章节列表
// GET /api/v1/modules?course_id=xxx
func (h *CatalogHandler) ListModules(c *gin.Context) {
	var req dto.ModuleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.ListModules(c.Request.Context(), req.CourseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetModule 章节详情
// GET /api/v1/modules/:id
func (h *CatalogHandler) GetModule(c *gin.Context) {
	result, err := h.catalogSvc.GetModule(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateModule 更新章节
// PUT /api/v1/modules/:id
func (h *CatalogHandler) UpdateModule(c *gin.Context) {
	var req dto.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.UpdateModule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteModule 删除章节
// DELETE /api/v1/modules/:id
func (h *CatalogHandler) DeleteModule(c *gin.Context) {
	if err := h.catalogSvc.DeleteModule(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── 课时 ──────────────────────

// CreateLesson 创建课时
// POST /api/v1/lessons
func (h *CatalogHandler) CreateLesson(c *gin.Context) {
	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.CreateLesson(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListLessons 课时列表
// GET /api/v1/lessons?module_id=xxx
func (h *CatalogHandler) ListLessons(c *gin.Context) {
	var req dto.LessonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.ListLessons(c.Request.Context(), req.ModuleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetLesson 课时详情
// GET /api/v1/lessons/:id
func (h *CatalogHandler) GetLesson(c *gin.Context) {
	result, err := h.catalogSvc.GetLesson(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateLesson 更新课时
// PUT /api/v1/lessons/:id
func (h *CatalogHandler) UpdateLesson(c *gin.Context) {
	var req dto.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.UpdateLesson(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteLesson 删除课时
// DELETE /api/v1/lessons/:id
func (h *CatalogHandler) DeleteLesson(c *gin.Context) {
	if err := h.catalogSvc.DeleteLesson(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── 先修条件 ──────────────────────

// CreatePrerequisite 添加先修条件
// POST /api/v1/prerequisites
func (h *CatalogHandler) CreatePrerequisite(c *gin.Context) {
	var req dto.CreatePrerequisiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.CreatePrerequisite(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListPrerequisites 课程的先修条件
// GET /api/v1/prerequisites?course_id=xxx
func (h *CatalogHandler) ListPrerequisites(c *gin.Context) {
	var req dto.PrerequisiteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "course_id 缺失或格式错误")
		return
	}

	result, err := h.catalogSvc.ListPrerequisites(c.Request.Context(), req.CourseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// DeletePrerequisite 删除先修条件
// DELETE /api/v1/prerequisites/:id
func (h *CatalogHandler) DeletePrerequisite(c *gin.Context) {
	if err := h.catalogSvc.DeletePrerequisite(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
