package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"progress-hub/backend/internal/model"
)

// TrainingPlanRepository 训练计划数据访问接口
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *model.TrainingPlan) error
	GetByID(ctx context.Context, id string) (*model.TrainingPlan, error)
	// GetDetail 预加载教练、课表（含动作，按 order_index）与汇总
	GetDetail(ctx context.Context, id string) (*model.TrainingPlan, error)
	Update(ctx context.Context, plan *model.TrainingPlan) error
	// ListCoveringDate 返回日期范围包含 day 的计划，按 start_date、week_number、plan_id 升序
	ListCoveringDate(ctx context.Context, userID string, day time.Time) ([]model.TrainingPlan, error)
	// ListByUser 按 start_date 倒序，limit<=0 表示不限
	ListByUser(ctx context.Context, userID string, limit int) ([]model.TrainingPlan, error)
}

type trainingPlanRepo struct {
	db *gorm.DB
}

// NewTrainingPlanRepo 创建 TrainingPlanRepository 实例
func NewTrainingPlanRepo(db *gorm.DB) TrainingPlanRepository {
	return &trainingPlanRepo{db: db}
}

func (r *trainingPlanRepo) Create(ctx context.Context, plan *model.TrainingPlan) error {
	// 子实体由调用方显式创建
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error
}

func (r *trainingPlanRepo) GetByID(ctx context.Context, id string) (*model.TrainingPlan, error) {
	var plan model.TrainingPlan
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *trainingPlanRepo) GetDetail(ctx context.Context, id string) (*model.TrainingPlan, error) {
	var plan model.TrainingPlan
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Summary").
		Preload("Workouts", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC, created_at ASC")
		}).
		Preload("Workouts.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("plan_id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *trainingPlanRepo) Update(ctx context.Context, plan *model.TrainingPlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(plan).Error
}

func (r *trainingPlanRepo) ListCoveringDate(ctx context.Context, userID string, day time.Time) ([]model.TrainingPlan, error) {
	var plans []model.TrainingPlan
	d := day.Format(model.DateLayout)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, d, d).
		Order("start_date ASC, week_number ASC, plan_id ASC").
		Find(&plans).Error
	return plans, err
}

func (r *trainingPlanRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.TrainingPlan, error) {
	var plans []model.TrainingPlan
	db := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Summary").
		Where("user_id = ?", userID).
		Order("start_date DESC, week_number DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&plans).Error
	return plans, err
}
