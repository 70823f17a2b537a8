package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	// 训练模块
	Trainer       TrainerRepository
	TrainingPlan  TrainingPlanRepository
	Workout       WorkoutRepository
	Exercise      ExerciseRepository
	ExerciseVideo ExerciseVideoRepository
	CompletionLog CompletionLogRepository
	WeeklySummary WeeklySummaryRepository

	// 课程模块
	Course         CourseRepository
	Module         ModuleRepository
	Lesson         LessonRepository
	Prerequisite   PrerequisiteRepository
	Enrollment     EnrollmentRepository
	LessonProgress LessonProgressRepository
	CourseProgress CourseProgressRepository

	// Tx 多实体写入的事务执行器
	Tx Transactor
}

// Transactor 在同一事务内执行 fn，fn 返回错误时整体回滚
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *Repository) error) error
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	repo := newRepositorySet(db)
	repo.Tx = &gormTransactor{db: db}
	return repo
}

func newRepositorySet(db *gorm.DB) *Repository {
	return &Repository{
		Trainer:       NewTrainerRepo(db),
		TrainingPlan:  NewTrainingPlanRepo(db),
		Workout:       NewWorkoutRepo(db),
		Exercise:      NewExerciseRepo(db),
		ExerciseVideo: NewExerciseVideoRepo(db),
		CompletionLog: NewCompletionLogRepo(db),
		WeeklySummary: NewWeeklySummaryRepo(db),

		Course:         NewCourseRepo(db),
		Module:         NewModuleRepo(db),
		Lesson:         NewLessonRepo(db),
		Prerequisite:   NewPrerequisiteRepo(db),
		Enrollment:     NewEnrollmentRepo(db),
		LessonProgress: NewLessonProgressRepo(db),
		CourseProgress: NewCourseProgressRepo(db),
	}
}

// ── 事务 ──

type gormTransactor struct {
	db *gorm.DB
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := newRepositorySet(tx)
		// 事务内再次开启时复用同一事务（gorm 使用 SAVEPOINT）
		txRepo.Tx = &gormTransactor{db: tx}
		return fn(txRepo)
	})
}
