package repository

import (
	"context"

	"gorm.io/gorm"

	"progress-hub/backend/internal/model"
)

// LessonRepository 课时数据访问接口
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id string) (*model.Lesson, error)
	ListByModule(ctx context.Context, moduleID string) ([]model.Lesson, error)
	// CountByCourse 课程下所有章节的课时总数
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	CountByModule(ctx context.Context, moduleID string) (int64, error)
	// GetCourseID 经由章节解析课时所属课程
	GetCourseID(ctx context.Context, lessonID string) (string, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id string) error
}

type lessonRepo struct {
	db *gorm.DB
}

// NewLessonRepo 创建 LessonRepository 实例
func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListByModule moduleID 为空时返回全部课时
func (r *lessonRepo) ListByModule(ctx context.Context, moduleID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	db := r.db.WithContext(ctx)
	if moduleID != "" {
		db = db.Where("module_id = ?", moduleID)
	}
	err := db.Order("module_id ASC, sort_order ASC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Joins("JOIN course_modules m ON m.module_id = lessons.module_id").
		Where("m.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *lessonRepo) CountByModule(ctx context.Context, moduleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("module_id = ?", moduleID).
		Count(&count).Error
	return count, err
}

func (r *lessonRepo) GetCourseID(ctx context.Context, lessonID string) (string, error) {
	var courseID string
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Select("m.course_id").
		Joins("JOIN course_modules m ON m.module_id = lessons.module_id").
		Where("lessons.lesson_id = ?", lessonID).
		Take(&courseID).Error
	return courseID, err
}

func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

func (r *lessonRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("lesson_id = ?", id).
		Delete(&model.Lesson{}).Error
}
