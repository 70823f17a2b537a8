package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"progress-hub/backend/internal/model"
)

// ModuleRepository 课程章节数据访问接口
type ModuleRepository interface {
	Create(ctx context.Context, module *model.CourseModule) error
	GetByID(ctx context.Context, id string) (*model.CourseModule, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseModule, error)
	Update(ctx context.Context, module *model.CourseModule) error
	Delete(ctx context.Context, id string) error
}

type moduleRepo struct {
	db *gorm.DB
}

// NewModuleRepo 创建 ModuleRepository 实例
func NewModuleRepo(db *gorm.DB) ModuleRepository {
	return &moduleRepo{db: db}
}

func (r *moduleRepo) Create(ctx context.Context, module *model.CourseModule) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(module).Error
}

func (r *moduleRepo) GetByID(ctx context.Context, id string) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.db.WithContext(ctx).
		Where("module_id = ?", id).
		First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// ListByCourse courseID 为空时返回全部章节
func (r *moduleRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	db := r.db.WithContext(ctx)
	if courseID != "" {
		db = db.Where("course_id = ?", courseID)
	}
	err := db.Order("course_id ASC, sort_order ASC").Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) Update(ctx context.Context, module *model.CourseModule) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(module).Error
}

func (r *moduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("module_id = ?", id).
		Delete(&model.CourseModule{}).Error
}
