package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"progress-hub/backend/config"
	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/model"
	"progress-hub/backend/internal/repository"
	apperr "progress-hub/backend/pkg/errors"
)

// TrainingProgressService 训练计划业务接口
type TrainingProgressService interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, planID string) (*dto.PlanResponse, error)
	// CurrentWeekPlan 返回日期范围包含今天的计划，没有时返回 nil, nil
	CurrentWeekPlan(ctx context.Context, userID string) (*dto.PlanResponse, error)
	PlanHistory(ctx context.Context, userID string, limit int) ([]dto.PlanResponse, error)
	AssignTrainer(ctx context.Context, planID, trainerID string) (*dto.PlanResponse, error)
	SetWorkoutCompletion(ctx context.Context, workoutID string, completed bool) (*dto.WorkoutResponse, error)
	LogExerciseCompletion(ctx context.Context, exerciseID, userID string, req *dto.LogExerciseRequest) (*dto.CompletionLogResponse, error)
	ExerciseHistory(ctx context.Context, exerciseID string, limit int) ([]dto.CompletionLogResponse, error)
	GenerateWeeklySummary(ctx context.Context, planID string) (*dto.WeeklySummaryResponse, error)
}

type trainingService struct {
	repo   *repository.Repository
	cfg    *config.TrainingConfig
	rnd    Randomizer
	now    func() time.Time
	logger *zap.Logger
}

// NewTrainingProgressService 创建 TrainingProgressService 实例，rnd 为 nil 时使用默认随机源
func NewTrainingProgressService(cfg *config.TrainingConfig, repo *repository.Repository, rnd Randomizer, logger *zap.Logger) TrainingProgressService {
	if rnd == nil {
		rnd = DefaultRandomizer
	}
	return &trainingService{
		repo:   repo,
		cfg:    cfg,
		rnd:    rnd,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// ────────────────────── CreatePlan ──────────────────────

func (s *trainingService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	startDate, endDate, err := validatePlanRequest(req)
	if err != nil {
		return nil, err
	}

	var trainer *model.Trainer
	if req.TrainerID != nil && *req.TrainerID != "" {
		trainer, err = s.repo.Trainer.GetByID(ctx, *req.TrainerID)
		if err != nil {
			return nil, s.lookupError(err, resourceTrainer, *req.TrainerID)
		}
	}

	plan := &model.TrainingPlan{
		UserID:              strings.TrimSpace(req.UserID),
		WeekNumber:          req.WeekNumber,
		StartDate:           startDate,
		EndDate:             endDate,
		MotivationalMessage: MotivationalMessage(req.WeekNumber, s.rnd),
	}
	if trainer != nil {
		plan.TrainerID = &trainer.TrainerID
	}

	// 计划、课表、动作在同一事务内创建
	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.TrainingPlan.Create(ctx, plan); err != nil {
			return err
		}
		for _, ws := range req.Workouts {
			workout := &model.Workout{
				PlanID:          plan.PlanID,
				DayOfWeek:       ws.DayOfWeek,
				WorkoutName:     strings.TrimSpace(ws.WorkoutName),
				Description:     ws.Description,
				DurationMinutes: ws.DurationMinutes,
			}
			if err := tx.Workout.Create(ctx, workout); err != nil {
				return err
			}
			for i, es := range ws.Exercises {
				exercise := &model.Exercise{
					WorkoutID:       workout.WorkoutID,
					ExerciseName:    strings.TrimSpace(es.ExerciseName),
					Sets:            es.Sets,
					Reps:            es.Reps,
					DurationSeconds: es.DurationSeconds,
					Notes:           es.Notes,
					OrderIndex:      i,
				}
				if err := tx.Exercise.Create(ctx, exercise); err != nil {
					return err
				}
				workout.Exercises = append(workout.Exercises, *exercise)
			}
			plan.Workouts = append(plan.Workouts, *workout)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建训练计划失败", zap.String("user_id", plan.UserID), zap.Error(err))
		return nil, err
	}

	plan.Trainer = trainer
	s.logger.Info("训练计划已创建",
		zap.String("plan_id", plan.PlanID),
		zap.String("user_id", plan.UserID),
		zap.Int("week_number", plan.WeekNumber),
		zap.Int("workouts", len(plan.Workouts)),
	)
	return toPlanResponse(plan), nil
}

// validatePlanRequest 校验必填项与日期范围，返回解析后的起止日期
func validatePlanRequest(req *dto.CreatePlanRequest) (time.Time, time.Time, error) {
	var zero time.Time
	if strings.TrimSpace(req.UserID) == "" {
		return zero, zero, apperr.NewValidation("user_id", "不能为空")
	}
	if req.WeekNumber < 1 {
		return zero, zero, apperr.NewValidation("week_number", "必须大于等于 1")
	}
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return zero, zero, err
	}
	endDate, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return zero, zero, err
	}
	if startDate.After(endDate) {
		return zero, zero, apperr.NewValidation("start_date", "不能晚于 end_date")
	}

	for i, w := range req.Workouts {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return zero, zero, apperr.NewValidation(fmt.Sprintf("workouts[%d].day_of_week", i), "必须在 0-6 之间")
		}
		if strings.TrimSpace(w.WorkoutName) == "" {
			return zero, zero, apperr.NewValidation(fmt.Sprintf("workouts[%d].workout_name", i), "不能为空")
		}
		if w.DurationMinutes != nil && *w.DurationMinutes < 0 {
			return zero, zero, apperr.NewValidation(fmt.Sprintf("workouts[%d].duration_minutes", i), "不能为负数")
		}
		for j, e := range w.Exercises {
			field := fmt.Sprintf("workouts[%d].exercises[%d]", i, j)
			if strings.TrimSpace(e.ExerciseName) == "" {
				return zero, zero, apperr.NewValidation(field+".exercise_name", "不能为空")
			}
			if e.Sets < 0 || e.Reps < 0 {
				return zero, zero, apperr.NewValidation(field, "sets 与 reps 不能为负数")
			}
			if e.DurationSeconds != nil && *e.DurationSeconds < 0 {
				return zero, zero, apperr.NewValidation(field+".duration_seconds", "不能为负数")
			}
		}
	}
	return startDate, endDate, nil
}

func parseDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, apperr.NewValidation(field, "不能为空")
	}
	t, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, apperr.NewValidation(field, "格式应为 YYYY-MM-DD")
	}
	return t, nil
}

// ────────────────────── GetPlan ──────────────────────

func (s *trainingService) GetPlan(ctx context.Context, planID string) (*dto.PlanResponse, error) {
	plan, err := s.repo.TrainingPlan.GetDetail(ctx, planID)
	if err != nil {
		return nil, s.lookupError(err, resourceTrainingPlan, planID)
	}
	return toPlanResponse(plan), nil
}

// ────────────────────── CurrentWeekPlan ──────────────────────

func (s *trainingService) CurrentWeekPlan(ctx context.Context, userID string) (*dto.PlanResponse, error) {
	if userID == "" {
		return nil, apperr.NewValidation("user_id", "不能为空")
	}

	today := model.TruncateToDate(s.now())
	plans, err := s.repo.TrainingPlan.ListCoveringDate(ctx, userID, today)
	if err != nil {
		s.logger.Error("查询本周计划失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	// 同一用户日期重叠的计划取 start_date 最早的一个
	if len(plans) > 1 {
		s.logger.Warn("存在日期重叠的训练计划",
			zap.String("user_id", userID),
			zap.String("date", today.Format(model.DateLayout)),
			zap.Int("count", len(plans)),
			zap.String("chosen_plan_id", plans[0].PlanID),
		)
	}

	return s.GetPlan(ctx, plans[0].PlanID)
}

// ────────────────────── PlanHistory ──────────────────────

func (s *trainingService) PlanHistory(ctx context.Context, userID string, limit int) ([]dto.PlanResponse, error) {
	if userID == "" {
		return nil, apperr.NewValidation("user_id", "不能为空")
	}

	plans, err := s.repo.TrainingPlan.ListByUser(ctx, userID, s.normalizeLimit(limit))
	if err != nil {
		s.logger.Error("查询历史计划失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, *toPlanResponse(&plans[i]))
	}
	return result, nil
}

func (s *trainingService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.HistoryLimit
	}
	if limit > s.cfg.MaxHistoryLimit {
		return s.cfg.MaxHistoryLimit
	}
	return limit
}

// ────────────────────── AssignTrainer ──────────────────────

func (s *trainingService) AssignTrainer(ctx context.Context, planID, trainerID string) (*dto.PlanResponse, error) {
	plan, err := s.repo.TrainingPlan.GetDetail(ctx, planID)
	if err != nil {
		return nil, s.lookupError(err, resourceTrainingPlan, planID)
	}
	trainer, err := s.repo.Trainer.GetByID(ctx, trainerID)
	if err != nil {
		return nil, s.lookupError(err, resourceTrainer, trainerID)
	}

	plan.TrainerID = &trainer.TrainerID
	plan.Trainer = trainer
	plan.UpdatedAt = s.now()
	if err := s.repo.TrainingPlan.Update(ctx, plan); err != nil {
		s.logger.Error("指派教练失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("教练已指派", zap.String("plan_id", planID), zap.String("trainer_id", trainerID))
	return toPlanResponse(plan), nil
}

// ────────────────────── SetWorkoutCompletion ──────────────────────

func (s *trainingService) SetWorkoutCompletion(ctx context.Context, workoutID string, completed bool) (*dto.WorkoutResponse, error) {
	workout, err := s.repo.Workout.GetByID(ctx, workoutID)
	if err != nil {
		return nil, s.lookupError(err, resourceWorkout, workoutID)
	}

	workout.Completed = completed
	if completed {
		now := s.now()
		workout.CompletedAt = &now
	} else {
		workout.CompletedAt = nil
	}
	if err := s.repo.Workout.Update(ctx, workout); err != nil {
		s.logger.Error("更新训练完成状态失败", zap.String("workout_id", workoutID), zap.Error(err))
		return nil, err
	}

	exercises, err := s.repo.Exercise.ListByWorkouts(ctx, []string{workout.WorkoutID})
	if err != nil {
		return nil, err
	}
	workout.Exercises = exercises

	resp := toWorkoutResponse(workout)
	return &resp, nil
}

// ────────────────────── LogExerciseCompletion ──────────────────────

func (s *trainingService) LogExerciseCompletion(ctx context.Context, exerciseID, userID string, req *dto.LogExerciseRequest) (*dto.CompletionLogResponse, error) {
	if userID == "" {
		return nil, apperr.NewValidation("user_id", "不能为空")
	}
	if _, err := s.repo.Exercise.GetByID(ctx, exerciseID); err != nil {
		return nil, s.lookupError(err, resourceExercise, exerciseID)
	}

	log := &model.CompletionLog{
		ExerciseID:               exerciseID,
		UserID:                   userID,
		CompletedAt:              s.now(),
		SetsCompleted:            req.SetsCompleted,
		RepsCompleted:            req.RepsCompleted,
		DurationCompletedSeconds: req.DurationSeconds,
		Notes:                    req.Notes,
	}
	if err := s.repo.CompletionLog.Create(ctx, log); err != nil {
		s.logger.Error("记录动作完成失败", zap.String("exercise_id", exerciseID), zap.Error(err))
		return nil, err
	}

	resp := toCompletionLogResponse(log)
	return &resp, nil
}

// ────────────────────── ExerciseHistory ──────────────────────

func (s *trainingService) ExerciseHistory(ctx context.Context, exerciseID string, limit int) ([]dto.CompletionLogResponse, error) {
	if _, err := s.repo.Exercise.GetByID(ctx, exerciseID); err != nil {
		return nil, s.lookupError(err, resourceExercise, exerciseID)
	}

	logs, err := s.repo.CompletionLog.ListByExercise(ctx, exerciseID, s.normalizeLimit(limit))
	if err != nil {
		s.logger.Error("查询动作完成记录失败", zap.String("exercise_id", exerciseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CompletionLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, toCompletionLogResponse(&logs[i]))
	}
	return result, nil
}

// ────────────────────── GenerateWeeklySummary ──────────────────────

func (s *trainingService) GenerateWeeklySummary(ctx context.Context, planID string) (*dto.WeeklySummaryResponse, error) {
	plan, err := s.repo.TrainingPlan.GetByID(ctx, planID)
	if err != nil {
		return nil, s.lookupError(err, resourceTrainingPlan, planID)
	}

	workouts, err := s.repo.Workout.ListByPlan(ctx, plan.PlanID)
	if err != nil {
		s.logger.Error("查询计划课表失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	summary := &model.WeeklySummary{
		PlanID:        plan.PlanID,
		TotalWorkouts: len(workouts),
		GeneratedAt:   s.now(),
	}
	workoutIDs := make([]string, 0, len(workouts))
	for _, w := range workouts {
		workoutIDs = append(workoutIDs, w.WorkoutID)
		if w.Completed {
			summary.CompletedWorkouts++
		}
		if w.DurationMinutes != nil {
			summary.TotalDurationMinutes += *w.DurationMinutes
		}
	}
	if len(workoutIDs) > 0 {
		exercises, err := s.repo.Exercise.ListByWorkouts(ctx, workoutIDs)
		if err != nil {
			s.logger.Error("查询计划动作失败", zap.String("plan_id", planID), zap.Error(err))
			return nil, err
		}
		summary.TotalExercises = len(exercises)
	}
	summary.CompletionPercentage = completionPercentage(summary.CompletedWorkouts, summary.TotalWorkouts)
	summary.TrainerFeedback = TrainerFeedback(summary.CompletionPercentage)

	if err := s.repo.WeeklySummary.Upsert(ctx, summary); err != nil {
		s.logger.Error("保存周汇总失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	return toWeeklySummaryResponse(summary), nil
}

// completionPercentage 完成率百分比，保留两位小数，总数为 0 时为 0
func completionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}

func (s *trainingService) lookupError(err error, resource, id string) error {
	return lookupError(s.logger, err, resource, id)
}

// ── 响应转换 ──

func toPlanResponse(p *model.TrainingPlan) *dto.PlanResponse {
	resp := &dto.PlanResponse{
		ID:                  p.PlanID,
		UserID:              p.UserID,
		WeekNumber:          p.WeekNumber,
		StartDate:           p.StartDate.Format(model.DateLayout),
		EndDate:             p.EndDate.Format(model.DateLayout),
		MotivationalMessage: p.MotivationalMessage,
		Workouts:            make([]dto.WorkoutResponse, 0, len(p.Workouts)),
		CreatedAt:           dto.FormatTime(p.CreatedAt),
		UpdatedAt:           dto.FormatTime(p.UpdatedAt),
	}
	if p.Trainer != nil {
		resp.Trainer = toTrainerResponse(p.Trainer)
	}
	for i := range p.Workouts {
		resp.Workouts = append(resp.Workouts, toWorkoutResponse(&p.Workouts[i]))
	}
	if p.Summary != nil {
		resp.Summary = toWeeklySummaryResponse(p.Summary)
	}
	return resp
}

func toWorkoutResponse(w *model.Workout) dto.WorkoutResponse {
	resp := dto.WorkoutResponse{
		ID:              w.WorkoutID,
		PlanID:          w.PlanID,
		DayOfWeek:       w.DayOfWeek,
		WorkoutName:     w.WorkoutName,
		Description:     w.Description,
		DurationMinutes: w.DurationMinutes,
		Completed:       w.Completed,
		CompletedAt:     dto.FormatTimePtr(w.CompletedAt),
		Exercises:       make([]dto.ExerciseResponse, 0, len(w.Exercises)),
	}
	for _, e := range w.Exercises {
		resp.Exercises = append(resp.Exercises, dto.ExerciseResponse{
			ID:              e.ExerciseID,
			WorkoutID:       e.WorkoutID,
			ExerciseName:    e.ExerciseName,
			Sets:            e.Sets,
			Reps:            e.Reps,
			DurationSeconds: e.DurationSeconds,
			Notes:           e.Notes,
			OrderIndex:      e.OrderIndex,
		})
	}
	return resp
}

func toCompletionLogResponse(l *model.CompletionLog) dto.CompletionLogResponse {
	return dto.CompletionLogResponse{
		ID:                       l.LogID,
		ExerciseID:               l.ExerciseID,
		UserID:                   l.UserID,
		CompletedAt:              dto.FormatTime(l.CompletedAt),
		SetsCompleted:            l.SetsCompleted,
		RepsCompleted:            l.RepsCompleted,
		DurationCompletedSeconds: l.DurationCompletedSeconds,
		Notes:                    l.Notes,
	}
}

func toWeeklySummaryResponse(ws *model.WeeklySummary) *dto.WeeklySummaryResponse {
	return &dto.WeeklySummaryResponse{
		ID:                   ws.SummaryID,
		PlanID:               ws.PlanID,
		TotalWorkouts:        ws.TotalWorkouts,
		CompletedWorkouts:    ws.CompletedWorkouts,
		TotalExercises:       ws.TotalExercises,
		CompletionPercentage: ws.CompletionPercentage,
		TotalDurationMinutes: ws.TotalDurationMinutes,
		TrainerFeedback:      ws.TrainerFeedback,
		GeneratedAt:          dto.FormatTime(ws.GeneratedAt),
	}
}
