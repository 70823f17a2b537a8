package repository

import (
	"context"

	"gorm.io/gorm"

	"progress-hub/backend/internal/model"
)

// LessonProgressRepository 课时进度数据访问接口
type LessonProgressRepository interface {
	Create(ctx context.Context, progress *model.LessonProgress) error
	GetByID(ctx context.Context, id string) (*model.LessonProgress, error)
	GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.LessonProgress, error)
	// ListByUser userID 为空时返回全部（管理员视图）
	ListByUser(ctx context.Context, userID string) ([]model.LessonProgress, error)
	Update(ctx context.Context, progress *model.LessonProgress) error
	// CountCompletedInCourse 统计用户在课程内 watch_percentage=100 的课时数
	CountCompletedInCourse(ctx context.Context, userID, courseID string) (int64, error)
	CountCompletedInModule(ctx context.Context, userID, moduleID string) (int64, error)
}

type lessonProgressRepo struct {
	db *gorm.DB
}

// NewLessonProgressRepo 创建 LessonProgressRepository 实例
func NewLessonProgressRepo(db *gorm.DB) LessonProgressRepository {
	return &lessonProgressRepo{db: db}
}

func (r *lessonProgressRepo) Create(ctx context.Context, progress *model.LessonProgress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *lessonProgressRepo) GetByID(ctx context.Context, id string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.db.WithContext(ctx).
		Where("progress_id = ?", id).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *lessonProgressRepo) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *lessonProgressRepo) ListByUser(ctx context.Context, userID string) ([]model.LessonProgress, error) {
	var list []model.LessonProgress
	db := r.db.WithContext(ctx)
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}
	err := db.Order("last_accessed_at DESC").Find(&list).Error
	return list, err
}

func (r *lessonProgressRepo) Update(ctx context.Context, progress *model.LessonProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

func (r *lessonProgressRepo) CountCompletedInCourse(ctx context.Context, userID, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LessonProgress{}).
		Joins("JOIN lessons l ON l.lesson_id = lesson_progress.lesson_id").
		Joins("JOIN course_modules m ON m.module_id = l.module_id").
		Where("lesson_progress.user_id = ? AND m.course_id = ? AND lesson_progress.watch_percentage = 100", userID, courseID).
		Count(&count).Error
	return count, err
}

func (r *lessonProgressRepo) CountCompletedInModule(ctx context.Context, userID, moduleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LessonProgress{}).
		Joins("JOIN lessons l ON l.lesson_id = lesson_progress.lesson_id").
		Where("lesson_progress.user_id = ? AND l.module_id = ? AND lesson_progress.watch_percentage = 100", userID, moduleID).
		Count(&count).Error
	return count, err
}
