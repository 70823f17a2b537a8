package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"progress-hub/backend/config"
	"progress-hub/backend/internal/repository"
	apperr "progress-hub/backend/pkg/errors"
	"progress-hub/backend/pkg/jwt"
	applogger "progress-hub/backend/pkg/logger"
	"progress-hub/backend/pkg/storage"
)

// 调用方角色
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleMember  = "member"
)

// NotFoundError 中的资源类型名
const (
	resourceTrainer        = "trainer"
	resourceTrainingPlan   = "training_plan"
	resourceWorkout        = "workout"
	resourceExercise       = "exercise"
	resourceCourse         = "course"
	resourceModule         = "module"
	resourceLesson         = "lesson"
	resourcePrerequisite   = "prerequisite"
	resourceEnrollment     = "enrollment"
	resourceLessonProgress = "lesson_progress"
	resourceCourseProgress = "course_progress"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Trainer  TrainerService
	Training TrainingProgressService
	Catalog  CourseCatalogService
	Progress CourseProgressService
	Media    MediaService
	Export   ExportService
}

// NewService 创建 Service 聚合
// blacklist 为 nil 时登出与刷新不做 Token 吊销；store 为 nil 时视为未启用对象存储
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	store storage.FileStorage,
	logger *zap.Logger,
) *Service {
	if store == nil {
		store = storage.Disabled()
	}
	return &Service{
		Auth:     NewAuthService(jwtMgr, blacklist, applogger.Module(logger, "auth")),
		Trainer:  NewTrainerService(repo, applogger.Module(logger, "trainer")),
		Training: NewTrainingProgressService(&cfg.Training, repo, nil, applogger.Module(logger, "training")),
		Catalog:  NewCourseCatalogService(repo, applogger.Module(logger, "catalog")),
		Progress: NewCourseProgressService(repo, applogger.Module(logger, "progress")),
		Media:    NewMediaService(&cfg.Storage, repo, store, applogger.Module(logger, "media")),
		Export:   NewExportService(repo, applogger.Module(logger, "export")),
	}
}

// pgInvalidTextRepresentation uuid 列收到非法字面量时 PostgreSQL 返回的 SQLSTATE
const pgInvalidTextRepresentation = "22P02"

// lookupError 将 gorm.ErrRecordNotFound 转换为 NotFoundError，其余存储错误记录日志后原样返回
// 非法格式的 id 不可能对应任何记录，同样视为 NotFoundError
func lookupError(logger *zap.Logger, err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || isMalformedID(err) {
		return apperr.NewNotFound(resource, id)
	}
	logger.Error("查询失败", zap.String("resource", resource), zap.String("id", id), zap.Error(err))
	return err
}

func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}

// ensureOwner 非管理员只能访问自己的数据
func ensureOwner(ownerID, callerID, callerRole string) error {
	if callerRole == RoleAdmin || ownerID == callerID {
		return nil
	}
	return apperr.ErrForbidden
}
