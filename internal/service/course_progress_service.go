package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/model"
	"progress-hub/backend/internal/repository"
	apperr "progress-hub/backend/pkg/errors"
)

// CourseProgressService 课时进度、课程进度与选课业务接口
type CourseProgressService interface {
	// StartLesson 获取或创建调用方的课时进度，created 表示是否新建
	StartLesson(ctx context.Context, userID, lessonID string) (*dto.LessonProgressResponse, bool, error)
	GetLessonProgress(ctx context.Context, id, callerID, callerRole string) (*dto.LessonProgressResponse, error)
	ListLessonProgress(ctx context.Context, callerID, callerRole string) ([]dto.LessonProgressResponse, error)
	UpdateWatchProgress(ctx context.Context, id string, req *dto.UpdateWatchProgressRequest, callerID, callerRole string) (*dto.LessonProgressResponse, error)
	MarkLessonCompleted(ctx context.Context, id, callerID, callerRole string) (*dto.LessonProgressResponse, error)

	// RecomputeCourseProgress 从课时进度重新统计课程进度，记录不存在时不做任何事
	RecomputeCourseProgress(ctx context.Context, userID, courseID string) error
	GetCourseProgress(ctx context.Context, userID, courseID string) (*dto.CourseProgressResponse, error)
	ListCourseProgress(ctx context.Context, userID string) ([]dto.CourseProgressResponse, error)

	// Enroll 报名课程，created=false 表示重新激活已有报名
	Enroll(ctx context.Context, userID, courseID string) (*dto.EnrollmentResponse, bool, error)
	IsPrerequisiteMet(ctx context.Context, userID string, prereq *model.Prerequisite) (bool, error)
	PrerequisitesMet(ctx context.Context, userID, courseID string) (*dto.PrerequisiteCheckResponse, error)
	EnrollmentStatus(ctx context.Context, userID, courseID string) (*dto.EnrollmentStatusResponse, error)
	ListEnrollments(ctx context.Context, callerID, callerRole string) ([]dto.EnrollmentResponse, error)
	GetEnrollment(ctx context.Context, id, callerID, callerRole string) (*dto.EnrollmentResponse, error)
	MarkEnrollmentStarted(ctx context.Context, id, callerID, callerRole string) (*dto.EnrollmentResponse, error)
	MarkEnrollmentCompleted(ctx context.Context, id, callerID, callerRole string) (*dto.EnrollmentResponse, error)
	Unenroll(ctx context.Context, id, callerID, callerRole string) error
}

type courseProgressService struct {
	repo   *repository.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewCourseProgressService 创建 CourseProgressService 实例
func NewCourseProgressService(repo *repository.Repository, logger *zap.Logger) CourseProgressService {
	return &courseProgressService{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// ────────────────────── StartLesson ──────────────────────

func (s *courseProgressService) StartLesson(ctx context.Context, userID, lessonID string) (*dto.LessonProgressResponse, bool, error) {
	if _, err := s.repo.Lesson.GetByID(ctx, lessonID); err != nil {
		return nil, false, lookupError(s.logger, err, resourceLesson, lessonID)
	}

	now := s.now()
	progress, err := s.repo.LessonProgress.GetByUserAndLesson(ctx, userID, lessonID)
	if err == nil {
		progress.LastAccessedAt = now
		if err := s.repo.LessonProgress.Update(ctx, progress); err != nil {
			s.logger.Error("更新课时访问时间失败", zap.String("progress_id", progress.ProgressID), zap.Error(err))
			return nil, false, err
		}
		return toLessonProgressResponse(progress), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	progress = &model.LessonProgress{
		UserID:         userID,
		LessonID:       lessonID,
		LastAccessedAt: now,
	}
	if err := s.repo.LessonProgress.Create(ctx, progress); err != nil {
		s.logger.Error("创建课时进度失败", zap.String("lesson_id", lessonID), zap.Error(err))
		return nil, false, err
	}
	return toLessonProgressResponse(progress), true, nil
}

// ────────────────────── GetLessonProgress / ListLessonProgress ──────────────────────

func (s *courseProgressService) GetLessonProgress(ctx context.Context, id, callerID, callerRole string) (*dto.LessonProgressResponse, error) {
	progress, err := s.ownedLessonProgress(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	return toLessonProgressResponse(progress), nil
}

func (s *courseProgressService) ListLessonProgress(ctx context.Context, callerID, callerRole string) ([]dto.LessonProgressResponse, error) {
	userID := callerID
	if callerRole == RoleAdmin {
		userID = ""
	}
	rows, err := s.repo.LessonProgress.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出课时进度失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.LessonProgressResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *toLessonProgressResponse(&rows[i]))
	}
	return result, nil
}

// ────────────────────── UpdateWatchProgress ──────────────────────

func (s *courseProgressService) UpdateWatchProgress(ctx context.Context, id string, req *dto.UpdateWatchProgressRequest, callerID, callerRole string) (*dto.LessonProgressResponse, error) {
	progress, err := s.ownedLessonProgress(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	// 缺省字段沿用当前值
	if req.WatchDuration != nil {
		progress.WatchDuration = *req.WatchDuration
	}
	if req.WatchPercentage != nil {
		progress.WatchPercentage = clampPercentage(*req.WatchPercentage)
	}

	now := s.now()
	progress.IsViewed = progress.WatchPercentage > 0
	if progress.StartedAt == nil {
		progress.StartedAt = &now
	}
	// 首次达到 100% 时记录完成时间，之后不再覆盖
	if progress.IsCompleted() && progress.CompletedAt == nil {
		progress.CompletedAt = &now
	}
	progress.LastAccessedAt = now

	if err := s.saveAndRecompute(ctx, progress); err != nil {
		return nil, err
	}
	return toLessonProgressResponse(progress), nil
}

// ────────────────────── MarkLessonCompleted ──────────────────────

func (s *courseProgressService) MarkLessonCompleted(ctx context.Context, id, callerID, callerRole string) (*dto.LessonProgressResponse, error) {
	progress, err := s.ownedLessonProgress(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	now := s.now()
	progress.WatchPercentage = 100
	progress.IsViewed = true
	progress.CompletedAt = &now
	if progress.StartedAt == nil {
		progress.StartedAt = &now
	}
	progress.LastAccessedAt = now

	if err := s.saveAndRecompute(ctx, progress); err != nil {
		return nil, err
	}
	return toLessonProgressResponse(progress), nil
}

// saveAndRecompute 在同一事务内保存课时进度并重算所属课程进度
func (s *courseProgressService) saveAndRecompute(ctx context.Context, progress *model.LessonProgress) error {
	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.LessonProgress.Update(ctx, progress); err != nil {
			return err
		}
		courseID, err := tx.Lesson.GetCourseID(ctx, progress.LessonID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound(resourceLesson, progress.LessonID)
			}
			return err
		}
		return s.recompute(ctx, tx, progress.UserID, courseID)
	})
	if err != nil && !apperr.IsNotFound(err) {
		s.logger.Error("保存课时进度失败", zap.String("progress_id", progress.ProgressID), zap.Error(err))
	}
	return err
}

func (s *courseProgressService) ownedLessonProgress(ctx context.Context, id, callerID, callerRole string) (*model.LessonProgress, error) {
	progress, err := s.repo.LessonProgress.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceLessonProgress, id)
	}
	if err := ensureOwner(progress.UserID, callerID, callerRole); err != nil {
		return nil, err
	}
	return progress, nil
}

func clampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ────────────────────── CourseProgress ──────────────────────

func (s *courseProgressService) RecomputeCourseProgress(ctx context.Context, userID, courseID string) error {
	if err := s.recompute(ctx, s.repo, userID, courseID); err != nil {
		s.logger.Error("重算课程进度失败",
			zap.String("user_id", userID), zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

// recompute 直接统计总课时与已完成课时，不做增量维护
func (s *courseProgressService) recompute(ctx context.Context, repo *repository.Repository, userID, courseID string) error {
	cp, err := repo.CourseProgress.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	total, err := repo.Lesson.CountByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	completed, err := repo.LessonProgress.CountCompletedInCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}

	now := s.now()
	cp.TotalLessons = int(total)
	cp.LessonsCompleted = int(completed)
	cp.Recalculate()
	if cp.CompletionPercentage >= 100 {
		cp.CompletedAt = &now
	}
	cp.LastAccessedAt = now
	return repo.CourseProgress.Update(ctx, cp)
}

func (s *courseProgressService) GetCourseProgress(ctx context.Context, userID, courseID string) (*dto.CourseProgressResponse, error) {
	cp, err := s.repo.CourseProgress.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceCourseProgress, courseID)
	}
	return toCourseProgressResponse(cp), nil
}

func (s *courseProgressService) ListCourseProgress(ctx context.Context, userID string) ([]dto.CourseProgressResponse, error) {
	rows, err := s.repo.CourseProgress.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出课程进度失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseProgressResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *toCourseProgressResponse(&rows[i]))
	}
	return result, nil
}

// ────────────────────── Enroll ──────────────────────

func (s *courseProgressService) Enroll(ctx context.Context, userID, courseID string) (*dto.EnrollmentResponse, bool, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		return nil, false, lookupError(s.logger, err, resourceCourse, courseID)
	}

	// 先修条件按列出顺序检查，遇到第一个未满足即返回
	prereqs, err := s.repo.Prerequisite.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	for i := range prereqs {
		met, err := s.IsPrerequisiteMet(ctx, userID, &prereqs[i])
		if err != nil {
			return nil, false, err
		}
		if !met {
			description, err := describePrerequisite(ctx, s.repo, &prereqs[i])
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, err
			}
			return nil, false, &apperr.PrerequisiteNotMetError{
				PrerequisiteID: prereqs[i].PrerequisiteID,
				Type:           prereqs[i].PrerequisiteType,
				Description:    description,
			}
		}
	}

	now := s.now()
	enrollment, created, err := s.enrollTx(ctx, userID, courseID, now)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发的首次报名已写入记录，重新执行一次即走再次报名分支
		s.logger.Warn("并发报名冲突，重试", zap.String("user_id", userID), zap.String("course_id", courseID))
		enrollment, created, err = s.enrollTx(ctx, userID, courseID, now)
	}
	if err != nil {
		s.logger.Error("报名课程失败", zap.String("user_id", userID), zap.String("course_id", courseID), zap.Error(err))
		return nil, false, err
	}

	s.logger.Info("报名课程",
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
		zap.Bool("created", created),
	)
	return toEnrollmentResponse(enrollment), created, nil
}

// enrollTx 在一个事务内创建或重新激活报名记录，课程进度仅在首次报名时创建
func (s *courseProgressService) enrollTx(ctx context.Context, userID, courseID string, now time.Time) (*model.Enrollment, bool, error) {
	var enrollment *model.Enrollment
	created := false

	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Enrollment.GetByUserAndCourse(ctx, userID, courseID)
		switch {
		case err == nil:
			existing.Status = model.EnrollmentStatusActive
			existing.StartedAt = &now
			if err := tx.Enrollment.Update(ctx, existing); err != nil {
				return err
			}
			enrollment = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			enrollment = &model.Enrollment{
				UserID:     userID,
				CourseID:   courseID,
				Status:     model.EnrollmentStatusActive,
				EnrolledAt: now,
				StartedAt:  &now,
			}
			if err := tx.Enrollment.Create(ctx, enrollment); err != nil {
				return err
			}
			created = true
		default:
			return err
		}

		if _, err := tx.CourseProgress.GetByUserAndCourse(ctx, userID, courseID); err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		total, err := tx.Lesson.CountByCourse(ctx, courseID)
		if err != nil {
			return err
		}
		return tx.CourseProgress.Create(ctx, &model.CourseProgress{
			UserID:         userID,
			CourseID:       courseID,
			TotalLessons:   int(total),
			StartedAt:      now,
			LastAccessedAt: now,
		})
	})
	if err != nil {
		return nil, false, err
	}
	return enrollment, created, nil
}

// ────────────────────── Prerequisites ──────────────────────

func (s *courseProgressService) IsPrerequisiteMet(ctx context.Context, userID string, prereq *model.Prerequisite) (bool, error) {
	targetID := prereq.TargetID()
	switch prereq.PrerequisiteType {
	case model.PrerequisiteTypeCourse:
		cp, err := s.repo.CourseProgress.GetByUserAndCourse(ctx, userID, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return cp.CompletionPercentage == 100, nil

	case model.PrerequisiteTypeModule:
		total, err := s.repo.Lesson.CountByModule(ctx, targetID)
		if err != nil {
			return false, err
		}
		// 空章节视为已满足
		if total == 0 {
			return true, nil
		}
		completed, err := s.repo.LessonProgress.CountCompletedInModule(ctx, userID, targetID)
		if err != nil {
			return false, err
		}
		return completed >= total, nil

	case model.PrerequisiteTypeLesson:
		lp, err := s.repo.LessonProgress.GetByUserAndLesson(ctx, userID, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return lp.IsCompleted(), nil
	}
	return false, nil
}

func (s *courseProgressService) PrerequisitesMet(ctx context.Context, userID, courseID string) (*dto.PrerequisiteCheckResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		return nil, lookupError(s.logger, err, resourceCourse, courseID)
	}
	prereqs, err := s.repo.Prerequisite.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// 逐条检查，汇总全部未满足项
	resp := &dto.PrerequisiteCheckResponse{AllMet: true, UnmetPrerequisites: []dto.UnmetPrerequisite{}}
	for i := range prereqs {
		met, err := s.IsPrerequisiteMet(ctx, userID, &prereqs[i])
		if err != nil {
			return nil, err
		}
		if met {
			continue
		}
		description, err := describePrerequisite(ctx, s.repo, &prereqs[i])
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		resp.AllMet = false
		resp.UnmetPrerequisites = append(resp.UnmetPrerequisites, dto.UnmetPrerequisite{
			PrerequisiteID: prereqs[i].PrerequisiteID,
			Type:           prereqs[i].PrerequisiteType,
			Description:    description,
		})
	}
	return resp, nil
}

// ────────────────────── Enrollment ──────────────────────

func (s *courseProgressService) EnrollmentStatus(ctx context.Context, userID, courseID string) (*dto.EnrollmentStatusResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		return nil, lookupError(s.logger, err, resourceCourse, courseID)
	}

	enrollment, err := s.repo.Enrollment.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.EnrollmentStatusResponse{IsEnrolled: false}, nil
		}
		return nil, err
	}
	status := enrollment.Status
	return &dto.EnrollmentStatusResponse{
		IsEnrolled:       enrollment.IsEnrolled(),
		EnrollmentStatus: &status,
	}, nil
}

func (s *courseProgressService) ListEnrollments(ctx context.Context, callerID, callerRole string) ([]dto.EnrollmentResponse, error) {
	userID := callerID
	if callerRole == RoleAdmin {
		userID = ""
	}
	rows, err := s.repo.Enrollment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出报名记录失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EnrollmentResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *toEnrollmentResponse(&rows[i]))
	}
	return result, nil
}

func (s *courseProgressService) GetEnrollment(ctx context.Context, id, callerID, callerRole string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.ownedEnrollment(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	return toEnrollmentResponse(enrollment), nil
}

func (s *courseProgressService) MarkEnrollmentStarted(ctx context.Context, id, callerID, callerRole string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.ownedEnrollment(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	now := s.now()
	enrollment.StartedAt = &now
	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("更新报名记录失败", zap.String("enrollment_id", id), zap.Error(err))
		return nil, err
	}
	return toEnrollmentResponse(enrollment), nil
}

func (s *courseProgressService) MarkEnrollmentCompleted(ctx context.Context, id, callerID, callerRole string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.ownedEnrollment(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	now := s.now()
	enrollment.Status = model.EnrollmentStatusCompleted
	enrollment.CompletedAt = &now

	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Enrollment.Update(ctx, enrollment); err != nil {
			return err
		}
		cp, err := tx.CourseProgress.GetByUserAndCourse(ctx, enrollment.UserID, enrollment.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		cp.CompletedAt = &now
		return tx.CourseProgress.Update(ctx, cp)
	})
	if err != nil {
		s.logger.Error("标记课程完成失败", zap.String("enrollment_id", id), zap.Error(err))
		return nil, err
	}
	return toEnrollmentResponse(enrollment), nil
}

func (s *courseProgressService) Unenroll(ctx context.Context, id, callerID, callerRole string) error {
	if _, err := s.ownedEnrollment(ctx, id, callerID, callerRole); err != nil {
		return err
	}
	if err := s.repo.Enrollment.Delete(ctx, id); err != nil {
		s.logger.Error("取消报名失败", zap.String("enrollment_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseProgressService) ownedEnrollment(ctx context.Context, id, callerID, callerRole string) (*model.Enrollment, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceEnrollment, id)
	}
	if err := ensureOwner(enrollment.UserID, callerID, callerRole); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ── 响应转换 ──

func toLessonProgressResponse(p *model.LessonProgress) *dto.LessonProgressResponse {
	return &dto.LessonProgressResponse{
		ID:              p.ProgressID,
		UserID:          p.UserID,
		LessonID:        p.LessonID,
		IsViewed:        p.IsViewed,
		WatchDuration:   p.WatchDuration,
		WatchPercentage: p.WatchPercentage,
		StartedAt:       dto.FormatTimePtr(p.StartedAt),
		CompletedAt:     dto.FormatTimePtr(p.CompletedAt),
		LastAccessedAt:  dto.FormatTime(p.LastAccessedAt),
	}
}

func toCourseProgressResponse(p *model.CourseProgress) *dto.CourseProgressResponse {
	return &dto.CourseProgressResponse{
		ID:                   p.ProgressID,
		UserID:               p.UserID,
		CourseID:             p.CourseID,
		LessonsCompleted:     p.LessonsCompleted,
		TotalLessons:         p.TotalLessons,
		CompletionPercentage: p.CompletionPercentage,
		StartedAt:            dto.FormatTime(p.StartedAt),
		CompletedAt:          dto.FormatTimePtr(p.CompletedAt),
		LastAccessedAt:       dto.FormatTime(p.LastAccessedAt),
	}
}

func toEnrollmentResponse(e *model.Enrollment) *dto.EnrollmentResponse {
	return &dto.EnrollmentResponse{
		ID:          e.EnrollmentID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		Status:      e.Status,
		EnrolledAt:  dto.FormatTime(e.EnrolledAt),
		StartedAt:   dto.FormatTimePtr(e.StartedAt),
		CompletedAt: dto.FormatTimePtr(e.CompletedAt),
	}
}
