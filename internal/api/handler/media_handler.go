package handler

import (
	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
)

// MediaHandler 训练动作视频与课时视频 HTTP 处理器
type MediaHandler struct {
	mediaSvc service.MediaService
}

// NewMediaHandler 创建 MediaHandler
func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// ExerciseVideoUploadURL 申请动作视频直传地址
// POST /api/v1/training/exercises/:id/video/upload-url
func (h *MediaHandler) ExerciseVideoUploadURL(c *gin.Context) {
	var req dto.VideoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.mediaSvc.ExerciseVideoUploadURL(c.Request.Context(), c.Param("id"), req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// SaveExerciseVideo 保存动作视频元数据
// PUT /api/v1/training/exercises/:id/video
func (h *MediaHandler) SaveExerciseVideo(c *gin.Context) {
	var req dto.SaveExerciseVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.mediaSvc.SaveExerciseVideo(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetExerciseVideo 动作视频信息
// GET /api/v1/training/exercises/:id/video
func (h *MediaHandler) GetExerciseVideo(c *gin.Context) {
	result, err := h.mediaSvc.GetExerciseVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// LessonVideoUploadURL 申请课时视频直传地址
// POST /api/v1/lessons/:id/video/upload-url
func (h *MediaHandler) LessonVideoUploadURL(c *gin.Context) {
	var req dto.VideoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.mediaSvc.LessonVideoUploadURL(c.Request.Context(), c.Param("id"), req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// AttachLessonVideo 绑定课时视频
// PUT /api/v1/lessons/:id/video
func (h *MediaHandler) AttachLessonVideo(c *gin.Context) {
	var req dto.AttachLessonVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.mediaSvc.AttachLessonVideo(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// LessonVideoURL 课时视频播放地址
// GET /api/v1/lessons/:id/video-url
func (h *MediaHandler) LessonVideoURL(c *gin.Context) {
	result, err := h.mediaSvc.LessonVideoURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
