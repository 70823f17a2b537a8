package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/model"
	"progress-hub/backend/internal/repository"
	apperr "progress-hub/backend/pkg/errors"
)

// TrainerService 教练业务接口
type TrainerService interface {
	Create(ctx context.Context, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TrainerResponse, error)
	List(ctx context.Context) ([]dto.TrainerResponse, error)
}

type trainerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTrainerService 创建 TrainerService 实例
func NewTrainerService(repo *repository.Repository, logger *zap.Logger) TrainerService {
	return &trainerService{repo: repo, logger: logger}
}

func (s *trainerService) Create(ctx context.Context, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, apperr.NewValidation("name", "不能为空")
	}
	if email == "" {
		return nil, apperr.NewValidation("email", "不能为空")
	}

	// 邮箱唯一
	if _, err := s.repo.Trainer.GetByEmail(ctx, email); err == nil {
		return nil, apperr.NewValidation("email", "已被其他教练使用")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	trainer := &model.Trainer{
		Name:           name,
		Email:          email,
		Specialization: strings.TrimSpace(req.Specialization),
	}
	if err := s.repo.Trainer.Create(ctx, trainer); err != nil {
		s.logger.Error("创建教练失败", zap.Error(err))
		return nil, err
	}

	return toTrainerResponse(trainer), nil
}

func (s *trainerService) GetByID(ctx context.Context, id string) (*dto.TrainerResponse, error) {
	trainer, err := s.repo.Trainer.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceTrainer, id)
	}
	return toTrainerResponse(trainer), nil
}

func (s *trainerService) List(ctx context.Context) ([]dto.TrainerResponse, error) {
	trainers, err := s.repo.Trainer.List(ctx)
	if err != nil {
		s.logger.Error("列出教练失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TrainerResponse, 0, len(trainers))
	for i := range trainers {
		result = append(result, *toTrainerResponse(&trainers[i]))
	}
	return result, nil
}

func toTrainerResponse(t *model.Trainer) *dto.TrainerResponse {
	return &dto.TrainerResponse{
		ID:             t.TrainerID,
		Name:           t.Name,
		Email:          t.Email,
		Specialization: t.Specialization,
		CreatedAt:      dto.FormatTime(t.CreatedAt),
	}
}
