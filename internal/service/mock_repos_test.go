package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"progress-hub/backend/config"
	"progress-hub/backend/internal/model"
	"progress-hub/backend/internal/repository"
)

// ── 内存数据 ──
// 各 mock repository 共享同一份 memDB，以支持跨表统计（课时计数、完成数等）

type memDB struct {
	seq int

	trainers  map[string]*model.Trainer
	plans     map[string]*model.TrainingPlan
	workouts  map[string]*model.Workout
	exercises map[string]*model.Exercise
	videos    map[string]*model.ExerciseVideo // key: exercise_id
	logs      []*model.CompletionLog
	summaries map[string]*model.WeeklySummary // key: plan_id

	courses        map[string]*model.Course
	modules        map[string]*model.CourseModule
	lessons        map[string]*model.Lesson
	prereqs        map[string]*model.Prerequisite
	enrollments    map[string]*model.Enrollment
	lessonProgress map[string]*model.LessonProgress
	courseProgress map[string]*model.CourseProgress
}

func newMemDB() *memDB {
	return &memDB{
		trainers:       make(map[string]*model.Trainer),
		plans:          make(map[string]*model.TrainingPlan),
		workouts:       make(map[string]*model.Workout),
		exercises:      make(map[string]*model.Exercise),
		videos:         make(map[string]*model.ExerciseVideo),
		summaries:      make(map[string]*model.WeeklySummary),
		courses:        make(map[string]*model.Course),
		modules:        make(map[string]*model.CourseModule),
		lessons:        make(map[string]*model.Lesson),
		prereqs:        make(map[string]*model.Prerequisite),
		enrollments:    make(map[string]*model.Enrollment),
		lessonProgress: make(map[string]*model.LessonProgress),
		courseProgress: make(map[string]*model.CourseProgress),
	}
}

// nextID 生成按创建顺序递增、字典序可比较的 ID
func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%04d", prefix, db.seq)
}

// newTestRepository 组装基于 memDB 的 Repository，事务直接在同一组 mock 上执行
func newTestRepository() (*repository.Repository, *memDB) {
	db := newMemDB()
	repo := &repository.Repository{
		Trainer:       &mockTrainerRepo{db: db},
		TrainingPlan:  &mockTrainingPlanRepo{db: db},
		Workout:       &mockWorkoutRepo{db: db},
		Exercise:      &mockExerciseRepo{db: db},
		ExerciseVideo: &mockExerciseVideoRepo{db: db},
		CompletionLog: &mockCompletionLogRepo{db: db},
		WeeklySummary: &mockWeeklySummaryRepo{db: db},

		Course:         &mockCourseRepo{db: db},
		Module:         &mockModuleRepo{db: db},
		Lesson:         &mockLessonRepo{db: db},
		Prerequisite:   &mockPrerequisiteRepo{db: db},
		Enrollment:     &mockEnrollmentRepo{db: db},
		LessonProgress: &mockLessonProgressRepo{db: db},
		CourseProgress: &mockCourseProgressRepo{db: db},
	}
	repo.Tx = &mockTransactor{repo: repo}
	return repo, db
}

type mockTransactor struct {
	repo  *repository.Repository
	calls int
}

func (t *mockTransactor) Transaction(_ context.Context, fn func(tx *repository.Repository) error) error {
	t.calls++
	return fn(t.repo)
}

// ── 测试辅助 ──

type fixedRandomizer struct{ n int }

func (r fixedRandomizer) Intn(int) int { return r.n }

// fakeClock 可手动推进的时钟
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)} // 周三
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testTrainingConfig() *config.TrainingConfig {
	return &config.TrainingConfig{HistoryLimit: 10, MaxHistoryLimit: 100}
}

func setupTestTrainingService() (*trainingService, *memDB, *fakeClock) {
	repo, db := newTestRepository()
	clock := newFakeClock()
	svc := NewTrainingProgressService(testTrainingConfig(), repo, fixedRandomizer{n: 0}, zap.NewNop()).(*trainingService)
	svc.now = clock.Now
	return svc, db, clock
}

func setupTestCourseProgressService() (*courseProgressService, *memDB, *fakeClock) {
	repo, db := newTestRepository()
	clock := newFakeClock()
	svc := NewCourseProgressService(repo, zap.NewNop()).(*courseProgressService)
	svc.now = clock.Now
	return svc, db, clock
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

// ── Mock TrainerRepository ──

type mockTrainerRepo struct{ db *memDB }

func (m *mockTrainerRepo) Create(_ context.Context, t *model.Trainer) error {
	if t.TrainerID == "" {
		t.TrainerID = m.db.nextID("trainer")
	}
	m.db.trainers[t.TrainerID] = t
	return nil
}

func (m *mockTrainerRepo) GetByID(_ context.Context, id string) (*model.Trainer, error) {
	if t, ok := m.db.trainers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// uuidColumnTrainerRepo 模拟 uuid 主键列：非法格式的 id 由数据库直接报 22P02
type uuidColumnTrainerRepo struct{ mockTrainerRepo }

func (m *uuidColumnTrainerRepo) GetByID(ctx context.Context, id string) (*model.Trainer, error) {
	if _, ok := m.db.trainers[id]; !ok && uuid.Validate(id) != nil {
		return nil, &pgconn.PgError{Severity: "ERROR", Code: "22P02", Message: fmt.Sprintf("invalid input syntax for type uuid: %q", id)}
	}
	return m.mockTrainerRepo.GetByID(ctx, id)
}

func (m *mockTrainerRepo) GetByEmail(_ context.Context, email string) (*model.Trainer, error) {
	for _, t := range m.db.trainers {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainerRepo) List(_ context.Context) ([]model.Trainer, error) {
	result := make([]model.Trainer, 0, len(m.db.trainers))
	for _, t := range m.db.trainers {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock TrainingPlanRepository ──

type mockTrainingPlanRepo struct{ db *memDB }

func (m *mockTrainingPlanRepo) Create(_ context.Context, p *model.TrainingPlan) error {
	if p.PlanID == "" {
		p.PlanID = m.db.nextID("plan")
	}
	stored := *p
	stored.Workouts, stored.Trainer, stored.Summary = nil, nil, nil
	m.db.plans[p.PlanID] = &stored
	return nil
}

func (m *mockTrainingPlanRepo) GetByID(_ context.Context, id string) (*model.TrainingPlan, error) {
	if p, ok := m.db.plans[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingPlanRepo) GetDetail(ctx context.Context, id string) (*model.TrainingPlan, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.attach(p)

	workouts, _ := (&mockWorkoutRepo{db: m.db}).ListByPlan(ctx, id)
	for i := range workouts {
		exercises, _ := (&mockExerciseRepo{db: m.db}).ListByWorkouts(ctx, []string{workouts[i].WorkoutID})
		workouts[i].Exercises = exercises
	}
	p.Workouts = workouts
	return p, nil
}

func (m *mockTrainingPlanRepo) attach(p *model.TrainingPlan) {
	if p.TrainerID != nil {
		p.Trainer = m.db.trainers[*p.TrainerID]
	}
	p.Summary = m.db.summaries[p.PlanID]
}

func (m *mockTrainingPlanRepo) Update(_ context.Context, p *model.TrainingPlan) error {
	stored := *p
	stored.Workouts, stored.Trainer, stored.Summary = nil, nil, nil
	m.db.plans[p.PlanID] = &stored
	return nil
}

func (m *mockTrainingPlanRepo) ListCoveringDate(_ context.Context, userID string, day time.Time) ([]model.TrainingPlan, error) {
	var result []model.TrainingPlan
	for _, p := range m.db.plans {
		if p.UserID == userID && p.Covers(day) {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber < b.WeekNumber
		}
		return a.PlanID < b.PlanID
	})
	return result, nil
}

func (m *mockTrainingPlanRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.TrainingPlan, error) {
	var result []model.TrainingPlan
	for _, p := range m.db.plans {
		if p.UserID == userID {
			cp := *p
			m.attach(&cp)
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.After(result[j].StartDate)
		}
		return result[i].WeekNumber > result[j].WeekNumber
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock WorkoutRepository ──

type mockWorkoutRepo struct{ db *memDB }

func (m *mockWorkoutRepo) Create(_ context.Context, w *model.Workout) error {
	if w.WorkoutID == "" {
		w.WorkoutID = m.db.nextID("workout")
	}
	stored := *w
	stored.Exercises = nil
	m.db.workouts[w.WorkoutID] = &stored
	return nil
}

func (m *mockWorkoutRepo) GetByID(_ context.Context, id string) (*model.Workout, error) {
	if w, ok := m.db.workouts[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkoutRepo) ListByPlan(_ context.Context, planID string) ([]model.Workout, error) {
	var result []model.Workout
	for _, w := range m.db.workouts {
		if w.PlanID == planID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].WorkoutID < result[j].WorkoutID
	})
	return result, nil
}

func (m *mockWorkoutRepo) Update(_ context.Context, w *model.Workout) error {
	stored := *w
	stored.Exercises = nil
	m.db.workouts[w.WorkoutID] = &stored
	return nil
}

// ── Mock ExerciseRepository ──

type mockExerciseRepo struct {
	db        *memDB
	createErr error
}

func (m *mockExerciseRepo) Create(_ context.Context, e *model.Exercise) error {
	if m.createErr != nil {
		return m.createErr
	}
	if e.ExerciseID == "" {
		e.ExerciseID = m.db.nextID("exercise")
	}
	stored := *e
	m.db.exercises[e.ExerciseID] = &stored
	return nil
}

func (m *mockExerciseRepo) GetByID(_ context.Context, id string) (*model.Exercise, error) {
	if e, ok := m.db.exercises[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExerciseRepo) ListByWorkouts(_ context.Context, workoutIDs []string) ([]model.Exercise, error) {
	wanted := make(map[string]bool, len(workoutIDs))
	for _, id := range workoutIDs {
		wanted[id] = true
	}
	var result []model.Exercise
	for _, e := range m.db.exercises {
		if wanted[e.WorkoutID] {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].WorkoutID != result[j].WorkoutID {
			return result[i].WorkoutID < result[j].WorkoutID
		}
		return result[i].OrderIndex < result[j].OrderIndex
	})
	return result, nil
}

// ── Mock ExerciseVideoRepository ──

type mockExerciseVideoRepo struct{ db *memDB }

func (m *mockExerciseVideoRepo) GetByExercise(_ context.Context, exerciseID string) (*model.ExerciseVideo, error) {
	if v, ok := m.db.videos[exerciseID]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExerciseVideoRepo) Upsert(_ context.Context, v *model.ExerciseVideo) error {
	if existing, ok := m.db.videos[v.ExerciseID]; ok {
		v.VideoID = existing.VideoID
	} else if v.VideoID == "" {
		v.VideoID = m.db.nextID("video")
	}
	stored := *v
	m.db.videos[v.ExerciseID] = &stored
	return nil
}

// ── Mock CompletionLogRepository ──

type mockCompletionLogRepo struct{ db *memDB }

func (m *mockCompletionLogRepo) Create(_ context.Context, l *model.CompletionLog) error {
	if l.LogID == "" {
		l.LogID = m.db.nextID("log")
	}
	stored := *l
	m.db.logs = append(m.db.logs, &stored)
	return nil
}

func (m *mockCompletionLogRepo) ListByExercise(_ context.Context, exerciseID string, limit int) ([]model.CompletionLog, error) {
	var result []model.CompletionLog
	for _, l := range m.db.logs {
		if l.ExerciseID == exerciseID {
			result = append(result, *l)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CompletedAt.After(result[j].CompletedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock WeeklySummaryRepository ──

type mockWeeklySummaryRepo struct {
	db      *memDB
	upserts int
}

func (m *mockWeeklySummaryRepo) GetByPlan(_ context.Context, planID string) (*model.WeeklySummary, error) {
	if s, ok := m.db.summaries[planID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeeklySummaryRepo) Upsert(_ context.Context, s *model.WeeklySummary) error {
	m.upserts++
	if existing, ok := m.db.summaries[s.PlanID]; ok {
		s.SummaryID = existing.SummaryID
	} else if s.SummaryID == "" {
		s.SummaryID = m.db.nextID("summary")
	}
	stored := *s
	m.db.summaries[s.PlanID] = &stored
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct{ db *memDB }

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	if c.CourseID == "" {
		c.CourseID = m.db.nextID("course")
	}
	stored := *c
	stored.Modules = nil
	m.db.courses[c.CourseID] = &stored
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.db.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetDetail(ctx context.Context, id string) (*model.Course, error) {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	modules, _ := (&mockModuleRepo{db: m.db}).ListByCourse(ctx, id)
	for i := range modules {
		lessons, _ := (&mockLessonRepo{db: m.db}).ListByModule(ctx, modules[i].ModuleID)
		modules[i].Lessons = lessons
	}
	c.Modules = modules
	return c, nil
}

func (m *mockCourseRepo) List(_ context.Context, publishedOnly bool) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.db.courses {
		if publishedOnly && c.Status != model.CourseStatusPublished {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID > result[j].CourseID })
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, c *model.Course) error {
	stored := *c
	stored.Modules = nil
	m.db.courses[c.CourseID] = &stored
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.db.courses, id)
	for mid, mod := range m.db.modules {
		if mod.CourseID == id {
			delete(m.db.modules, mid)
			for lid, l := range m.db.lessons {
				if l.ModuleID == mid {
					delete(m.db.lessons, lid)
				}
			}
		}
	}
	return nil
}

// ── Mock ModuleRepository ──

type mockModuleRepo struct{ db *memDB }

func (m *mockModuleRepo) Create(_ context.Context, mod *model.CourseModule) error {
	if mod.ModuleID == "" {
		mod.ModuleID = m.db.nextID("module")
	}
	stored := *mod
	stored.Lessons = nil
	m.db.modules[mod.ModuleID] = &stored
	return nil
}

func (m *mockModuleRepo) GetByID(_ context.Context, id string) (*model.CourseModule, error) {
	if mod, ok := m.db.modules[id]; ok {
		cp := *mod
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModuleRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseModule, error) {
	var result []model.CourseModule
	for _, mod := range m.db.modules {
		if courseID == "" || mod.CourseID == courseID {
			result = append(result, *mod)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CourseID != result[j].CourseID {
			return result[i].CourseID < result[j].CourseID
		}
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (m *mockModuleRepo) Update(_ context.Context, mod *model.CourseModule) error {
	stored := *mod
	stored.Lessons = nil
	m.db.modules[mod.ModuleID] = &stored
	return nil
}

func (m *mockModuleRepo) Delete(_ context.Context, id string) error {
	delete(m.db.modules, id)
	return nil
}

// ── Mock LessonRepository ──

type mockLessonRepo struct{ db *memDB }

func (m *mockLessonRepo) Create(_ context.Context, l *model.Lesson) error {
	if l.LessonID == "" {
		l.LessonID = m.db.nextID("lesson")
	}
	stored := *l
	m.db.lessons[l.LessonID] = &stored
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id string) (*model.Lesson, error) {
	if l, ok := m.db.lessons[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonRepo) ListByModule(_ context.Context, moduleID string) ([]model.Lesson, error) {
	var result []model.Lesson
	for _, l := range m.db.lessons {
		if moduleID == "" || l.ModuleID == moduleID {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ModuleID != result[j].ModuleID {
			return result[i].ModuleID < result[j].ModuleID
		}
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (m *mockLessonRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var n int64
	for _, l := range m.db.lessons {
		if mod, ok := m.db.modules[l.ModuleID]; ok && mod.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockLessonRepo) CountByModule(_ context.Context, moduleID string) (int64, error) {
	var n int64
	for _, l := range m.db.lessons {
		if l.ModuleID == moduleID {
			n++
		}
	}
	return n, nil
}

func (m *mockLessonRepo) GetCourseID(_ context.Context, lessonID string) (string, error) {
	l, ok := m.db.lessons[lessonID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	mod, ok := m.db.modules[l.ModuleID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return mod.CourseID, nil
}

func (m *mockLessonRepo) Update(_ context.Context, l *model.Lesson) error {
	stored := *l
	m.db.lessons[l.LessonID] = &stored
	return nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id string) error {
	delete(m.db.lessons, id)
	return nil
}

// ── Mock PrerequisiteRepository ──

type mockPrerequisiteRepo struct{ db *memDB }

func (m *mockPrerequisiteRepo) Create(_ context.Context, p *model.Prerequisite) error {
	if p.PrerequisiteID == "" {
		p.PrerequisiteID = m.db.nextID("prereq")
	}
	stored := *p
	m.db.prereqs[p.PrerequisiteID] = &stored
	return nil
}

func (m *mockPrerequisiteRepo) GetByID(_ context.Context, id string) (*model.Prerequisite, error) {
	if p, ok := m.db.prereqs[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPrerequisiteRepo) ListByCourse(_ context.Context, courseID string) ([]model.Prerequisite, error) {
	var result []model.Prerequisite
	for _, p := range m.db.prereqs {
		if p.CourseID == courseID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PrerequisiteID < result[j].PrerequisiteID })
	return result, nil
}

func (m *mockPrerequisiteRepo) Delete(_ context.Context, id string) error {
	delete(m.db.prereqs, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct{ db *memDB }

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	for _, existing := range m.db.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	if e.EnrollmentID == "" {
		e.EnrollmentID = m.db.nextID("enrollment")
	}
	stored := *e
	m.db.enrollments[e.EnrollmentID] = &stored
	return nil
}

// staleReadEnrollmentRepo 第一次按 (user, course) 查询时读不到并发事务刚提交的报名记录
type staleReadEnrollmentRepo struct {
	mockEnrollmentRepo
	stale bool
}

func (m *staleReadEnrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*model.Enrollment, error) {
	if m.stale {
		m.stale = false
		return nil, gorm.ErrRecordNotFound
	}
	return m.mockEnrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.db.enrollments[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByUserAndCourse(_ context.Context, userID, courseID string) (*model.Enrollment, error) {
	for _, e := range m.db.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.db.enrollments {
		if userID == "" || e.UserID == userID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EnrollmentID < result[j].EnrollmentID })
	return result, nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, e *model.Enrollment) error {
	stored := *e
	m.db.enrollments[e.EnrollmentID] = &stored
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, id string) error {
	delete(m.db.enrollments, id)
	return nil
}

// ── Mock LessonProgressRepository ──

type mockLessonProgressRepo struct{ db *memDB }

func (m *mockLessonProgressRepo) Create(_ context.Context, p *model.LessonProgress) error {
	if p.ProgressID == "" {
		p.ProgressID = m.db.nextID("lp")
	}
	stored := *p
	m.db.lessonProgress[p.ProgressID] = &stored
	return nil
}

func (m *mockLessonProgressRepo) GetByID(_ context.Context, id string) (*model.LessonProgress, error) {
	if p, ok := m.db.lessonProgress[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonProgressRepo) GetByUserAndLesson(_ context.Context, userID, lessonID string) (*model.LessonProgress, error) {
	for _, p := range m.db.lessonProgress {
		if p.UserID == userID && p.LessonID == lessonID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonProgressRepo) ListByUser(_ context.Context, userID string) ([]model.LessonProgress, error) {
	var result []model.LessonProgress
	for _, p := range m.db.lessonProgress {
		if userID == "" || p.UserID == userID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProgressID < result[j].ProgressID })
	return result, nil
}

func (m *mockLessonProgressRepo) Update(_ context.Context, p *model.LessonProgress) error {
	stored := *p
	m.db.lessonProgress[p.ProgressID] = &stored
	return nil
}

func (m *mockLessonProgressRepo) CountCompletedInCourse(_ context.Context, userID, courseID string) (int64, error) {
	var n int64
	for _, p := range m.db.lessonProgress {
		if p.UserID != userID || p.WatchPercentage != 100 {
			continue
		}
		l, ok := m.db.lessons[p.LessonID]
		if !ok {
			continue
		}
		if mod, ok := m.db.modules[l.ModuleID]; ok && mod.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockLessonProgressRepo) CountCompletedInModule(_ context.Context, userID, moduleID string) (int64, error) {
	var n int64
	for _, p := range m.db.lessonProgress {
		if p.UserID != userID || p.WatchPercentage != 100 {
			continue
		}
		if l, ok := m.db.lessons[p.LessonID]; ok && l.ModuleID == moduleID {
			n++
		}
	}
	return n, nil
}

// ── Mock CourseProgressRepository ──

type mockCourseProgressRepo struct{ db *memDB }

func (m *mockCourseProgressRepo) Create(_ context.Context, p *model.CourseProgress) error {
	for _, existing := range m.db.courseProgress {
		if existing.UserID == p.UserID && existing.CourseID == p.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ProgressID == "" {
		p.ProgressID = m.db.nextID("cp")
	}
	stored := *p
	m.db.courseProgress[p.ProgressID] = &stored
	return nil
}

func (m *mockCourseProgressRepo) GetByUserAndCourse(_ context.Context, userID, courseID string) (*model.CourseProgress, error) {
	for _, p := range m.db.courseProgress {
		if p.UserID == userID && p.CourseID == courseID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseProgressRepo) ListByUser(_ context.Context, userID string) ([]model.CourseProgress, error) {
	var result []model.CourseProgress
	for _, p := range m.db.courseProgress {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProgressID < result[j].ProgressID })
	return result, nil
}

func (m *mockCourseProgressRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseProgress, error) {
	var result []model.CourseProgress
	for _, p := range m.db.courseProgress {
		if p.CourseID == courseID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockCourseProgressRepo) Update(_ context.Context, p *model.CourseProgress) error {
	stored := *p
	m.db.courseProgress[p.ProgressID] = &stored
	return nil
}

// ── 课程数据构造 ──

// seedCourse 创建课程及其章节，lessonsPerModule[i] 为第 i 个章节的课时数
func seedCourse(db *memDB, title string, lessonsPerModule ...int) (*model.Course, []*model.CourseModule, []*model.Lesson) {
	ctx := context.Background()
	course := &model.Course{Title: title, Status: model.CourseStatusPublished}
	(&mockCourseRepo{db: db}).Create(ctx, course)

	var modules []*model.CourseModule
	var lessons []*model.Lesson
	for i, n := range lessonsPerModule {
		mod := &model.CourseModule{CourseID: course.CourseID, Title: fmt.Sprintf("%s 第%d章", title, i+1), SortOrder: i}
		(&mockModuleRepo{db: db}).Create(ctx, mod)
		modules = append(modules, mod)
		for j := 0; j < n; j++ {
			l := &model.Lesson{ModuleID: mod.ModuleID, Title: fmt.Sprintf("%s 课时%d-%d", title, i+1, j+1), SortOrder: j, LessonType: model.LessonTypeVideo}
			(&mockLessonRepo{db: db}).Create(ctx, l)
			lessons = append(lessons, l)
		}
	}
	return course, modules, lessons
}

// seedLessonProgress 直接写入课时进度，返回存储中的记录
func seedLessonProgress(db *memDB, userID, lessonID string, pct int) *model.LessonProgress {
	p := &model.LessonProgress{UserID: userID, LessonID: lessonID, WatchPercentage: pct, IsViewed: pct > 0}
	(&mockLessonProgressRepo{db: db}).Create(context.Background(), p)
	return db.lessonProgress[p.ProgressID]
}
