package repository

import (
	"context"

	"gorm.io/gorm"

	"progress-hub/backend/internal/model"
)

// CompletionLogRepository 动作完成记录数据访问接口（仅追加）
type CompletionLogRepository interface {
	Create(ctx context.Context, log *model.CompletionLog) error
	// ListByExercise 按完成时间倒序，limit<=0 表示不限
	ListByExercise(ctx context.Context, exerciseID string, limit int) ([]model.CompletionLog, error)
}

type completionLogRepo struct {
	db *gorm.DB
}

// NewCompletionLogRepo 创建 CompletionLogRepository 实例
func NewCompletionLogRepo(db *gorm.DB) CompletionLogRepository {
	return &completionLogRepo{db: db}
}

func (r *completionLogRepo) Create(ctx context.Context, log *model.CompletionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *completionLogRepo) ListByExercise(ctx context.Context, exerciseID string, limit int) ([]model.CompletionLog, error) {
	var logs []model.CompletionLog
	db := r.db.WithContext(ctx).
		Where("exercise_id = ?", exerciseID).
		Order("completed_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&logs).Error
	return logs, err
}
