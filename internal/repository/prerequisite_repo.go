package repository

import (
	"context"

	"gorm.io/gorm"

	"progress-hub/backend/internal/model"
)

// PrerequisiteRepository 先修条件数据访问接口
type PrerequisiteRepository interface {
	Create(ctx context.Context, prereq *model.Prerequisite) error
	GetByID(ctx context.Context, id string) (*model.Prerequisite, error)
	// ListByCourse 按创建顺序返回，评估时以此为准
	ListByCourse(ctx context.Context, courseID string) ([]model.Prerequisite, error)
	Delete(ctx context.Context, id string) error
}

type prerequisiteRepo struct {
	db *gorm.DB
}

// NewPrerequisiteRepo 创建 PrerequisiteRepository 实例
func NewPrerequisiteRepo(db *gorm.DB) PrerequisiteRepository {
	return &prerequisiteRepo{db: db}
}

func (r *prerequisiteRepo) Create(ctx context.Context, prereq *model.Prerequisite) error {
	return r.db.WithContext(ctx).Create(prereq).Error
}

func (r *prerequisiteRepo) GetByID(ctx context.Context, id string) (*model.Prerequisite, error) {
	var prereq model.Prerequisite
	err := r.db.WithContext(ctx).
		Where("prerequisite_id = ?", id).
		First(&prereq).Error
	if err != nil {
		return nil, err
	}
	return &prereq, nil
}

func (r *prerequisiteRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Prerequisite, error) {
	var prereqs []model.Prerequisite
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC, prerequisite_id ASC").
		Find(&prereqs).Error
	return prereqs, err
}

func (r *prerequisiteRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("prerequisite_id = ?", id).
		Delete(&model.Prerequisite{}).Error
}
