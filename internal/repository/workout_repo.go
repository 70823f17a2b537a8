package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"progress-hub/backend/internal/model"
)

// WorkoutRepository 训练课数据访问接口
type WorkoutRepository interface {
	Create(ctx context.Context, workout *model.Workout) error
	GetByID(ctx context.Context, id string) (*model.Workout, error)
	ListByPlan(ctx context.Context, planID string) ([]model.Workout, error)
	Update(ctx context.Context, workout *model.Workout) error
}

type workoutRepo struct {
	db *gorm.DB
}

// NewWorkoutRepo 创建 WorkoutRepository 实例
func NewWorkoutRepo(db *gorm.DB) WorkoutRepository {
	return &workoutRepo{db: db}
}

func (r *workoutRepo) Create(ctx context.Context, workout *model.Workout) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(workout).Error
}

func (r *workoutRepo) GetByID(ctx context.Context, id string) (*model.Workout, error) {
	var workout model.Workout
	err := r.db.WithContext(ctx).
		Where("workout_id = ?", id).
		First(&workout).Error
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepo) ListByPlan(ctx context.Context, planID string) ([]model.Workout, error) {
	var workouts []model.Workout
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("day_of_week ASC, created_at ASC").
		Find(&workouts).Error
	return workouts, err
}

func (r *workoutRepo) Update(ctx context.Context, workout *model.Workout) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(workout).Error
}
