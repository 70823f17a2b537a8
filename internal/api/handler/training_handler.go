package handler

import (
	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
)

// TrainingHandler 训练计划、训练课与动作记录 HTTP 处理器
type TrainingHandler struct {
	trainingSvc service.TrainingProgressService
}

// NewTrainingHandler 创建 TrainingHandler
func NewTrainingHandler(trainingSvc service.TrainingProgressService) *TrainingHandler {
	return &TrainingHandler{trainingSvc: trainingSvc}
}

// ────────────────────── 训练计划 ──────────────────────

// CreatePlan 创建周训练计划
// POST /api/v1/training/plans
func (h *TrainingHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.trainingSvc.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// GetPlan 训练计划详情
// GET /api/v1/training/plans/:id
func (h *TrainingHandler) GetPlan(c *gin.Context) {
	plan, ok := h.loadOwnPlan(c, c.Param("id"))
	if !ok {
		return
	}

	response.OK(c, plan)
}

// CurrentWeekPlan 本周训练计划
// GET /api/v1/training/plans/current?user_id=xxx
func (h *TrainingHandler) CurrentWeekPlan(c *gin.Context) {
	userID, ok := resolveTargetUser(c)
	if !ok {
		return
	}

	result, err := h.trainingSvc.CurrentWeekPlan(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if result == nil {
		response.NotFound(c, 21005, "本周暂无训练计划")
		return
	}

	response.OK(c, result)
}

// PlanHistory 历史训练计划
// GET /api/v1/training/plans/history?user_id=xxx&limit=10
func (h *TrainingHandler) PlanHistory(c *gin.Context) {
	var req dto.PlanHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := resolveTargetUser(c)
	if !ok {
		return
	}

	result, err := h.trainingSvc.PlanHistory(c.Request.Context(), userID, req.Limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// AssignTrainer 为计划指派教练
// PUT /api/v1/training/plans/:id/trainer
func (h *TrainingHandler) AssignTrainer(c *gin.Context) {
	var req dto.AssignTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.trainingSvc.AssignTrainer(c.Request.Context(), c.Param("id"), req.TrainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// GenerateSummary 生成周训练汇总
// POST /api/v1/training/plans/:id/summary
func (h *TrainingHandler) GenerateSummary(c *gin.Context) {
	planID := c.Param("id")
	if _, ok := h.loadOwnPlan(c, planID); !ok {
		return
	}

	result, err := h.trainingSvc.GenerateWeeklySummary(c.Request.Context(), planID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// ────────────────────── 训练课与动作 ──────────────────────

// SetWorkoutCompletion 标记训练课完成状态
// PUT /api/v1/training/workouts/:id/complete
func (h *TrainingHandler) SetWorkoutCompletion(c *gin.Context) {
	var req dto.SetWorkoutCompletionRequest
	// 允许空 body
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	result, err := h.trainingSvc.SetWorkoutCompletion(c.Request.Context(), c.Param("id"), completed)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// LogExercise 记录动作完成情况，记录归属于调用方
// POST /api/v1/training/exercises/:id/logs
func (h *TrainingHandler) LogExercise(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.LogExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.trainingSvc.LogExerciseCompletion(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ExerciseHistory 动作完成记录
// GET /api/v1/training/exercises/:id/logs?limit=10
func (h *TrainingHandler) ExerciseHistory(c *gin.Context) {
	var req dto.HistoryLimitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.trainingSvc.ExerciseHistory(c.Request.Context(), c.Param("id"), req.Limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// loadOwnPlan 读取计划；member 只能访问自己的计划
func (h *TrainingHandler) loadOwnPlan(c *gin.Context, planID string) (*dto.PlanResponse, bool) {
	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return nil, false
	}

	plan, err := h.trainingSvc.GetPlan(c.Request.Context(), planID)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	if role == service.RoleMember && plan.UserID != callerID {
		response.Forbidden(c, 10003, "无权查看该训练计划")
		return nil, false
	}
	return plan, true
}
