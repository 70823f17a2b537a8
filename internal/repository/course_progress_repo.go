package repository

import (
	"context"

	"gorm.io/gorm"

	"progress-hub/backend/internal/model"
)

// CourseProgressRepository 课程进度数据访问接口
type CourseProgressRepository interface {
	Create(ctx context.Context, progress *model.CourseProgress) error
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*model.CourseProgress, error)
	ListByUser(ctx context.Context, userID string) ([]model.CourseProgress, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseProgress, error)
	Update(ctx context.Context, progress *model.CourseProgress) error
}

type courseProgressRepo struct {
	db *gorm.DB
}

// NewCourseProgressRepo 创建 CourseProgressRepository 实例
func NewCourseProgressRepo(db *gorm.DB) CourseProgressRepository {
	return &courseProgressRepo{db: db}
}

func (r *courseProgressRepo) Create(ctx context.Context, progress *model.CourseProgress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *courseProgressRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *courseProgressRepo) ListByUser(ctx context.Context, userID string) ([]model.CourseProgress, error) {
	var list []model.CourseProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_accessed_at DESC").
		Find(&list).Error
	return list, err
}

func (r *courseProgressRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseProgress, error) {
	var list []model.CourseProgress
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("completion_percentage DESC, user_id ASC").
		Find(&list).Error
	return list, err
}

func (r *courseProgressRepo) Update(ctx context.Context, progress *model.CourseProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}
