package handler

import (
	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
)

// TrainerHandler 教练模块 HTTP 处理器
type TrainerHandler struct {
	trainerSvc service.TrainerService
}

// NewTrainerHandler 创建 TrainerHandler
func NewTrainerHandler(trainerSvc service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerSvc: trainerSvc}
}

// Create 创建教练
// POST /api/v1/training/trainers
func (h *TrainerHandler) Create(c *gin.Context) {
	var req dto.CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.trainerSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// List 教练列表
// GET /api/v1/training/trainers
func (h *TrainerHandler) List(c *gin.Context) {
	result, err := h.trainerSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetByID 教练详情
// GET /api/v1/training/trainers/:id
func (h *TrainerHandler) GetByID(c *gin.Context) {
	result, err := h.trainerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
