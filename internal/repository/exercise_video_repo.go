package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"progress-hub/backend/internal/model"
)

// ExerciseVideoRepository 动作视频元数据数据访问接口
type ExerciseVideoRepository interface {
	GetByExercise(ctx context.Context, exerciseID string) (*model.ExerciseVideo, error)
	// Upsert 以 exercise_id 为冲突键写入
	Upsert(ctx context.Context, video *model.ExerciseVideo) error
}

type exerciseVideoRepo struct {
	db *gorm.DB
}

// NewExerciseVideoRepo 创建 ExerciseVideoRepository 实例
func NewExerciseVideoRepo(db *gorm.DB) ExerciseVideoRepository {
	return &exerciseVideoRepo{db: db}
}

func (r *exerciseVideoRepo) GetByExercise(ctx context.Context, exerciseID string) (*model.ExerciseVideo, error) {
	var video model.ExerciseVideo
	err := r.db.WithContext(ctx).
		Where("exercise_id = ?", exerciseID).
		First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *exerciseVideoRepo) Upsert(ctx context.Context, video *model.ExerciseVideo) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "exercise_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"object_key", "video_url", "thumbnail_url", "duration_seconds", "video_title", "updated_at",
			}),
		}).
		Create(video).Error
}
