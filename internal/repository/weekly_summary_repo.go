package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"progress-hub/backend/internal/model"
)

// WeeklySummaryRepository 周汇总数据访问接口
type WeeklySummaryRepository interface {
	GetByPlan(ctx context.Context, planID string) (*model.WeeklySummary, error)
	// Upsert 以 plan_id 为冲突键：不存在则创建，存在则覆盖
	Upsert(ctx context.Context, summary *model.WeeklySummary) error
}

type weeklySummaryRepo struct {
	db *gorm.DB
}

// NewWeeklySummaryRepo 创建 WeeklySummaryRepository 实例
func NewWeeklySummaryRepo(db *gorm.DB) WeeklySummaryRepository {
	return &weeklySummaryRepo{db: db}
}

func (r *weeklySummaryRepo) GetByPlan(ctx context.Context, planID string) (*model.WeeklySummary, error) {
	var summary model.WeeklySummary
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *weeklySummaryRepo) Upsert(ctx context.Context, summary *model.WeeklySummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "plan_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_workouts", "completed_workouts", "total_exercises",
				"completion_percentage", "total_duration_minutes",
				"trainer_feedback", "generated_at", "updated_at",
			}),
		}).
		Create(summary).Error
}
