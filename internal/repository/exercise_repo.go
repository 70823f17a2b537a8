package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"progress-hub/backend/internal/model"
)

// ExerciseRepository 训练动作数据访问接口
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	GetByID(ctx context.Context, id string) (*model.Exercise, error)
	// ListByWorkouts 批量查询多个课的动作，按 workout_id、order_index 排序
	ListByWorkouts(ctx context.Context, workoutIDs []string) ([]model.Exercise, error)
}

type exerciseRepo struct {
	db *gorm.DB
}

// NewExerciseRepo 创建 ExerciseRepository 实例
func NewExerciseRepo(db *gorm.DB) ExerciseRepository {
	return &exerciseRepo{db: db}
}

func (r *exerciseRepo) Create(ctx context.Context, exercise *model.Exercise) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(exercise).Error
}

func (r *exerciseRepo) GetByID(ctx context.Context, id string) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.db.WithContext(ctx).
		Where("exercise_id = ?", id).
		First(&exercise).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepo) ListByWorkouts(ctx context.Context, workoutIDs []string) ([]model.Exercise, error) {
	var exercises []model.Exercise
	if len(workoutIDs) == 0 {
		return exercises, nil
	}
	err := r.db.WithContext(ctx).
		Where("workout_id IN ?", workoutIDs).
		Order("workout_id ASC, order_index ASC").
		Find(&exercises).Error
	return exercises, err
}
