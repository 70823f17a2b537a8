package handler

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	trainingSvc service.TrainingProgressService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, trainingSvc service.TrainingProgressService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, trainingSvc: trainingSvc}
}

// ExportTrainingHistory 导出训练记录
// GET /api/v1/training/export/history?user_id=xxx
func (h *ExportHandler) ExportTrainingHistory(c *gin.Context) {
	userID, ok := resolveTargetUser(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTrainingHistory(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	writeAttachment(c, buf, filename, contentTypeXLSX)
}

// ExportCourseProgress 导出课程学习进度
// GET /api/v1/courses/:id/export/progress
func (h *ExportHandler) ExportCourseProgress(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCourseProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	writeAttachment(c, buf, filename, contentTypeXLSX)
}

// ExportPlanCalendar 导出训练计划日历（iCalendar）
// GET /api/v1/training/plans/:id/calendar
func (h *ExportHandler) ExportPlanCalendar(c *gin.Context) {
	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}
	planID := c.Param("id")

	if role == service.RoleMember {
		plan, err := h.trainingSvc.GetPlan(c.Request.Context(), planID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if plan.UserID != callerID {
			response.Forbidden(c, 10003, "无权导出该训练计划")
			return
		}
	}

	buf, filename, err := h.exportSvc.ExportPlanCalendar(c.Request.Context(), planID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	writeAttachment(c, buf, filename, contentTypeICS)
}

// writeAttachment 设置下载响应头并写出文件
func writeAttachment(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
