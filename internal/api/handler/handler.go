package handler

import "progress-hub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Trainer  *TrainerHandler
	Training *TrainingHandler
	Course   *CourseHandler
	Catalog  *CatalogHandler
	Progress *ProgressHandler
	Media    *MediaHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Trainer:  NewTrainerHandler(svc.Trainer),
		Training: NewTrainingHandler(svc.Training),
		Course:   NewCourseHandler(svc.Catalog, svc.Progress),
		Catalog:  NewCatalogHandler(svc.Catalog),
		Progress: NewProgressHandler(svc.Progress),
		Media:    NewMediaHandler(svc.Media),
		Export:   NewExportHandler(svc.Export, svc.Training),
	}
}
