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

// CourseCatalogService 课程目录业务接口（课程、章节、课时、先修条件）
type CourseCatalogService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id, callerRole string) (*dto.CourseDetailResponse, error)
	ListCourses(ctx context.Context, callerRole string) ([]dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, id string) error

	CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error)
	GetModule(ctx context.Context, id string) (*dto.ModuleResponse, error)
	ListModules(ctx context.Context, courseID string) ([]dto.ModuleResponse, error)
	UpdateModule(ctx context.Context, id string, req *dto.UpdateModuleRequest) (*dto.ModuleResponse, error)
	DeleteModule(ctx context.Context, id string) error

	CreateLesson(ctx context.Context, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetLesson(ctx context.Context, id string) (*dto.LessonResponse, error)
	ListLessons(ctx context.Context, moduleID string) ([]dto.LessonResponse, error)
	UpdateLesson(ctx context.Context, id string, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, id string) error

	CreatePrerequisite(ctx context.Context, req *dto.CreatePrerequisiteRequest) (*dto.PrerequisiteResponse, error)
	ListPrerequisites(ctx context.Context, courseID string) ([]dto.PrerequisiteResponse, error)
	DeletePrerequisite(ctx context.Context, id string) error
}

type courseCatalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseCatalogService 创建 CourseCatalogService 实例
func NewCourseCatalogService(repo *repository.Repository, logger *zap.Logger) CourseCatalogService {
	return &courseCatalogService{repo: repo, logger: logger}
}

// ────────────────────── Course ──────────────────────

func (s *courseCatalogService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.NewValidation("title", "不能为空")
	}
	status := req.Status
	if status == "" {
		status = model.CourseStatusDraft
	}

	course := &model.Course{
		Title:        title,
		Description:  req.Description,
		InstructorID: callerID,
		Status:       status,
		ThumbnailURL: req.ThumbnailURL,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程已创建", zap.String("course_id", course.CourseID), zap.String("status", status))
	return toCourseResponse(course), nil
}

func (s *courseCatalogService) GetCourse(ctx context.Context, id, callerRole string) (*dto.CourseDetailResponse, error) {
	course, err := s.repo.Course.GetDetail(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceCourse, id)
	}
	// 非管理员看不到未发布课程
	if callerRole != RoleAdmin && course.Status != model.CourseStatusPublished {
		return nil, apperr.NewNotFound(resourceCourse, id)
	}

	resp := &dto.CourseDetailResponse{
		CourseResponse: *toCourseResponse(course),
		Modules:        make([]dto.ModuleResponse, 0, len(course.Modules)),
	}
	for i := range course.Modules {
		m := toModuleResponse(&course.Modules[i])
		resp.TotalLessons += len(m.Lessons)
		resp.Modules = append(resp.Modules, *m)
	}

	prereqs, err := s.ListPrerequisites(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Prerequisites = prereqs
	return resp, nil
}

func (s *courseCatalogService) ListCourses(ctx context.Context, callerRole string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx, callerRole != RoleAdmin)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

func (s *courseCatalogService) UpdateCourse(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceCourse, id)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.NewValidation("title", "不能为空")
		}
		course.Title = title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Status != nil {
		course.Status = *req.Status
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("course_id", id), zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *courseCatalogService) DeleteCourse(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		return lookupError(s.logger, err, resourceCourse, id)
	}
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("course_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("课程已删除", zap.String("course_id", id))
	return nil
}

// ────────────────────── Module ──────────────────────

func (s *courseCatalogService) CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		return nil, lookupError(s.logger, err, resourceCourse, req.CourseID)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.NewValidation("title", "不能为空")
	}
	if err := s.checkModuleSortOrder(ctx, req.CourseID, "", req.SortOrder); err != nil {
		return nil, err
	}

	module := &model.CourseModule{
		CourseID:    req.CourseID,
		Title:       title,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if err := s.repo.Module.Create(ctx, module); err != nil {
		s.logger.Error("创建章节失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}
	return toModuleResponse(module), nil
}

func (s *courseCatalogService) GetModule(ctx context.Context, id string) (*dto.ModuleResponse, error) {
	module, err := s.repo.Module.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceModule, id)
	}
	lessons, err := s.repo.Lesson.ListByModule(ctx, id)
	if err != nil {
		return nil, err
	}
	module.Lessons = lessons
	return toModuleResponse(module), nil
}

func (s *courseCatalogService) ListModules(ctx context.Context, courseID string) ([]dto.ModuleResponse, error) {
	modules, err := s.repo.Module.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出章节失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ModuleResponse, 0, len(modules))
	for i := range modules {
		result = append(result, *toModuleResponse(&modules[i]))
	}
	return result, nil
}

func (s *courseCatalogService) UpdateModule(ctx context.Context, id string, req *dto.UpdateModuleRequest) (*dto.ModuleResponse, error) {
	module, err := s.repo.Module.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceModule, id)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.NewValidation("title", "不能为空")
		}
		module.Title = title
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.SortOrder != nil && *req.SortOrder != module.SortOrder {
		if err := s.checkModuleSortOrder(ctx, module.CourseID, module.ModuleID, *req.SortOrder); err != nil {
			return nil, err
		}
		module.SortOrder = *req.SortOrder
	}

	if err := s.repo.Module.Update(ctx, module); err != nil {
		s.logger.Error("更新章节失败", zap.String("module_id", id), zap.Error(err))
		return nil, err
	}
	return toModuleResponse(module), nil
}

func (s *courseCatalogService) DeleteModule(ctx context.Context, id string) error {
	if _, err := s.repo.Module.GetByID(ctx, id); err != nil {
		return lookupError(s.logger, err, resourceModule, id)
	}
	if err := s.repo.Module.Delete(ctx, id); err != nil {
		s.logger.Error("删除章节失败", zap.String("module_id", id), zap.Error(err))
		return err
	}
	return nil
}

// checkModuleSortOrder 同一课程内 sort_order 唯一
func (s *courseCatalogService) checkModuleSortOrder(ctx context.Context, courseID, selfID string, sortOrder int) error {
	modules, err := s.repo.Module.ListByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	for _, m := range modules {
		if m.ModuleID != selfID && m.SortOrder == sortOrder {
			return apperr.NewValidation("sort_order", "在该课程内已被占用")
		}
	}
	return nil
}

// ────────────────────── Lesson ──────────────────────

func (s *courseCatalogService) CreateLesson(ctx context.Context, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := s.repo.Module.GetByID(ctx, req.ModuleID); err != nil {
		return nil, lookupError(s.logger, err, resourceModule, req.ModuleID)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.NewValidation("title", "不能为空")
	}
	if err := s.checkLessonSortOrder(ctx, req.ModuleID, "", req.SortOrder); err != nil {
		return nil, err
	}
	lessonType := req.LessonType
	if lessonType == "" {
		lessonType = model.LessonTypeVideo
	}

	lesson := &model.Lesson{
		ModuleID:      req.ModuleID,
		Title:         title,
		Description:   req.Description,
		SortOrder:     req.SortOrder,
		LessonType:    lessonType,
		VideoURL:      req.VideoURL,
		VideoDuration: req.VideoDuration,
		Content:       req.Content,
	}
	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		s.logger.Error("创建课时失败", zap.String("module_id", req.ModuleID), zap.Error(err))
		return nil, err
	}

	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *courseCatalogService) GetLesson(ctx context.Context, id string) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceLesson, id)
	}
	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *courseCatalogService) ListLessons(ctx context.Context, moduleID string) ([]dto.LessonResponse, error) {
	lessons, err := s.repo.Lesson.ListByModule(ctx, moduleID)
	if err != nil {
		s.logger.Error("列出课时失败", zap.String("module_id", moduleID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		result = append(result, toLessonResponse(&lessons[i]))
	}
	return result, nil
}

func (s *courseCatalogService) UpdateLesson(ctx context.Context, id string, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceLesson, id)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.NewValidation("title", "不能为空")
		}
		lesson.Title = title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.SortOrder != nil && *req.SortOrder != lesson.SortOrder {
		if err := s.checkLessonSortOrder(ctx, lesson.ModuleID, lesson.LessonID, *req.SortOrder); err != nil {
			return nil, err
		}
		lesson.SortOrder = *req.SortOrder
	}
	if req.LessonType != nil {
		lesson.LessonType = *req.LessonType
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.VideoDuration != nil {
		lesson.VideoDuration = req.VideoDuration
	}
	if req.Content != nil {
		lesson.Content = *req.Content
	}

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		s.logger.Error("更新课时失败", zap.String("lesson_id", id), zap.Error(err))
		return nil, err
	}

	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *courseCatalogService) DeleteLesson(ctx context.Context, id string) error {
	if _, err := s.repo.Lesson.GetByID(ctx, id); err != nil {
		return lookupError(s.logger, err, resourceLesson, id)
	}
	if err := s.repo.Lesson.Delete(ctx, id); err != nil {
		s.logger.Error("删除课时失败", zap.String("lesson_id", id), zap.Error(err))
		return err
	}
	return nil
}

// checkLessonSortOrder 同一章节内 sort_order 唯一
func (s *courseCatalogService) checkLessonSortOrder(ctx context.Context, moduleID, selfID string, sortOrder int) error {
	lessons, err := s.repo.Lesson.ListByModule(ctx, moduleID)
	if err != nil {
		return err
	}
	for _, l := range lessons {
		if l.LessonID != selfID && l.SortOrder == sortOrder {
			return apperr.NewValidation("sort_order", "在该章节内已被占用")
		}
	}
	return nil
}

// ────────────────────── Prerequisite ──────────────────────

func (s *courseCatalogService) CreatePrerequisite(ctx context.Context, req *dto.CreatePrerequisiteRequest) (*dto.PrerequisiteResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		return nil, lookupError(s.logger, err, resourceCourse, req.CourseID)
	}

	prereq := &model.Prerequisite{
		CourseID:             req.CourseID,
		PrerequisiteType:     req.PrerequisiteType,
		PrerequisiteCourseID: nonEmpty(req.PrerequisiteCourseID),
		PrerequisiteModuleID: nonEmpty(req.PrerequisiteModuleID),
		PrerequisiteLessonID: nonEmpty(req.PrerequisiteLessonID),
	}
	if err := validatePrerequisiteTarget(prereq); err != nil {
		return nil, err
	}

	description, err := describePrerequisite(ctx, s.repo, prereq)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound(prereq.PrerequisiteType, prereq.TargetID())
		}
		return nil, err
	}

	if err := s.repo.Prerequisite.Create(ctx, prereq); err != nil {
		s.logger.Error("创建先修条件失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}
	return toPrerequisiteResponse(prereq, description), nil
}

func (s *courseCatalogService) ListPrerequisites(ctx context.Context, courseID string) ([]dto.PrerequisiteResponse, error) {
	prereqs, err := s.repo.Prerequisite.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出先修条件失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PrerequisiteResponse, 0, len(prereqs))
	for i := range prereqs {
		description, err := describePrerequisite(ctx, s.repo, &prereqs[i])
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		result = append(result, *toPrerequisiteResponse(&prereqs[i], description))
	}
	return result, nil
}

func (s *courseCatalogService) DeletePrerequisite(ctx context.Context, id string) error {
	if _, err := s.repo.Prerequisite.GetByID(ctx, id); err != nil {
		return lookupError(s.logger, err, resourcePrerequisite, id)
	}
	return s.repo.Prerequisite.Delete(ctx, id)
}

// validatePrerequisiteTarget 只能设置与类型匹配的目标 ID，且课程不能以自身为先修
func validatePrerequisiteTarget(p *model.Prerequisite) error {
	targets := []struct {
		typ     string
		present bool
	}{
		{model.PrerequisiteTypeCourse, p.PrerequisiteCourseID != nil},
		{model.PrerequisiteTypeModule, p.PrerequisiteModuleID != nil},
		{model.PrerequisiteTypeLesson, p.PrerequisiteLessonID != nil},
	}
	known := false
	for _, t := range targets {
		if t.typ == p.PrerequisiteType {
			known = true
			if !t.present {
				return apperr.NewValidation("prerequisite_"+t.typ+"_id", "不能为空")
			}
		} else if t.present {
			return apperr.NewValidation("prerequisite_"+t.typ+"_id", "与先修类型不匹配")
		}
	}
	if !known {
		return apperr.NewValidation("prerequisite_type", "必须为 course、module 或 lesson")
	}
	if p.PrerequisiteType == model.PrerequisiteTypeCourse && *p.PrerequisiteCourseID == p.CourseID {
		return apperr.NewValidation("prerequisite_course_id", "不能以课程自身作为先修")
	}
	return nil
}

// describePrerequisite 返回先修目标实体的标题
func describePrerequisite(ctx context.Context, repo *repository.Repository, p *model.Prerequisite) (string, error) {
	id := p.TargetID()
	switch p.PrerequisiteType {
	case model.PrerequisiteTypeCourse:
		c, err := repo.Course.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return c.Title, nil
	case model.PrerequisiteTypeModule:
		m, err := repo.Module.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return m.Title, nil
	case model.PrerequisiteTypeLesson:
		l, err := repo.Lesson.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return l.Title, nil
	}
	return "", nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// ── 响应转换 ──

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:           c.CourseID,
		Title:        c.Title,
		Description:  c.Description,
		InstructorID: c.InstructorID,
		Status:       c.Status,
		ThumbnailURL: c.ThumbnailURL,
		CreatedAt:    dto.FormatTime(c.CreatedAt),
		UpdatedAt:    dto.FormatTime(c.UpdatedAt),
	}
}

func toModuleResponse(m *model.CourseModule) *dto.ModuleResponse {
	resp := &dto.ModuleResponse{
		ID:          m.ModuleID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		SortOrder:   m.SortOrder,
	}
	if len(m.Lessons) > 0 {
		resp.Lessons = make([]dto.LessonResponse, 0, len(m.Lessons))
		for i := range m.Lessons {
			resp.Lessons = append(resp.Lessons, toLessonResponse(&m.Lessons[i]))
		}
	}
	return resp
}

func toLessonResponse(l *model.Lesson) dto.LessonResponse {
	return dto.LessonResponse{
		ID:            l.LessonID,
		ModuleID:      l.ModuleID,
		Title:         l.Title,
		Description:   l.Description,
		SortOrder:     l.SortOrder,
		LessonType:    l.LessonType,
		VideoURL:      l.VideoURL,
		HasVideo:      l.VideoURL != "" || l.VideoObjectKey != "",
		VideoDuration: l.VideoDuration,
		Content:       l.Content,
	}
}

func toPrerequisiteResponse(p *model.Prerequisite, description string) *dto.PrerequisiteResponse {
	return &dto.PrerequisiteResponse{
		ID:          p.PrerequisiteID,
		CourseID:    p.CourseID,
		Type:        p.PrerequisiteType,
		TargetID:    p.TargetID(),
		Description: description,
	}
}
