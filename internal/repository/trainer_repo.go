package repository

import (
	"context"

	"gorm.io/gorm"

	"progress-hub/backend/internal/model"
)

// TrainerRepository 教练数据访问接口
type TrainerRepository interface {
	Create(ctx context.Context, trainer *model.Trainer) error
	GetByID(ctx context.Context, id string) (*model.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*model.Trainer, error)
	List(ctx context.Context) ([]model.Trainer, error)
}

type trainerRepo struct {
	db *gorm.DB
}

// NewTrainerRepo 创建 TrainerRepository 实例
func NewTrainerRepo(db *gorm.DB) TrainerRepository {
	return &trainerRepo{db: db}
}

func (r *trainerRepo) Create(ctx context.Context, trainer *model.Trainer) error {
	return r.db.WithContext(ctx).Create(trainer).Error
}

func (r *trainerRepo) GetByID(ctx context.Context, id string) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", id).
		First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *trainerRepo) GetByEmail(ctx context.Context, email string) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *trainerRepo) List(ctx context.Context) ([]model.Trainer, error) {
	var trainers []model.Trainer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&trainers).Error
	return trainers, err
}
