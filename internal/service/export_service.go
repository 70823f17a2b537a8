package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"progress-hub/backend/internal/model"
	"progress-hub/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("没有可导出的数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportTrainingHistory 导出用户全部训练计划的汇总为 Excel
	ExportTrainingHistory(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportCourseProgress 导出课程下所有学员的进度为 Excel
	ExportCourseProgress(ctx context.Context, courseID string) (*bytes.Buffer, string, error)
	// ExportPlanCalendar 导出训练计划为 iCalendar，每次训练一个全天事件
	ExportPlanCalendar(ctx context.Context, planID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

var headerStyleDef = &excelize.Style{
	Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
	Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
}

// ────────────────────── ExportTrainingHistory ──────────────────────
//
// 每行一个计划：周次 | 开始 | 结束 | 教练 | 已完成/总训练 | 完成率 | 总时长 | 教练反馈
// 已生成周汇总的计划直接使用汇总，否则按课表即时统计

func (s *exportService) ExportTrainingHistory(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	plans, err := s.repo.TrainingPlan.ListByUser(ctx, userID, 0)
	if err != nil {
		s.logger.Error("查询训练计划失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	if len(plans) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "训练记录"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"周次", "开始日期", "结束日期", "教练", "已完成训练", "训练总数", "完成率(%)", "总时长(分钟)", "教练反馈"}
	writeHeader(f, sheetName, headers)
	f.SetColWidth(sheetName, "A", "H", 14)
	f.SetColWidth(sheetName, "I", "I", 60)

	for i := range plans {
		p := &plans[i]
		summary := p.Summary
		if summary == nil {
			summary, err = s.liveSummary(ctx, p.PlanID)
			if err != nil {
				return nil, "", err
			}
		}

		trainerName := "-"
		if p.Trainer != nil {
			trainerName = p.Trainer.Name
		}

		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), p.WeekNumber)
		f.SetCellValue(sheetName, cell("B", row), p.StartDate.Format(model.DateLayout))
		f.SetCellValue(sheetName, cell("C", row), p.EndDate.Format(model.DateLayout))
		f.SetCellValue(sheetName, cell("D", row), trainerName)
		f.SetCellValue(sheetName, cell("E", row), summary.CompletedWorkouts)
		f.SetCellValue(sheetName, cell("F", row), summary.TotalWorkouts)
		f.SetCellValue(sheetName, cell("G", row), summary.CompletionPercentage)
		f.SetCellValue(sheetName, cell("H", row), summary.TotalDurationMinutes)
		f.SetCellValue(sheetName, cell("I", row), summary.TrainerFeedback)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("训练记录_%s.xlsx", userID)
	return buf, filename, nil
}

// liveSummary 未生成汇总的计划按课表即时统计（不落库）
func (s *exportService) liveSummary(ctx context.Context, planID string) (*model.WeeklySummary, error) {
	workouts, err := s.repo.Workout.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	summary := &model.WeeklySummary{PlanID: planID, TotalWorkouts: len(workouts)}
	for _, w := range workouts {
		if w.Completed {
			summary.CompletedWorkouts++
		}
		if w.DurationMinutes != nil {
			summary.TotalDurationMinutes += *w.DurationMinutes
		}
	}
	summary.CompletionPercentage = completionPercentage(summary.CompletedWorkouts, summary.TotalWorkouts)
	summary.TrainerFeedback = TrainerFeedback(summary.CompletionPercentage)
	return summary, nil
}

// ────────────────────── ExportCourseProgress ──────────────────────

func (s *exportService) ExportCourseProgress(ctx context.Context, courseID string) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		return nil, "", lookupError(s.logger, err, resourceCourse, courseID)
	}

	rows, err := s.repo.CourseProgress.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课程进度失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学习进度"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"学员", "已完成课时", "总课时", "完成率(%)", "开始时间", "完成时间", "最近学习"}
	writeHeader(f, sheetName, headers)
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "D", 12)
	f.SetColWidth(sheetName, "E", "G", 22)

	const timeLayout = "2006-01-02 15:04"
	for i, cp := range rows {
		completedAt := "-"
		if cp.CompletedAt != nil {
			completedAt = cp.CompletedAt.Format(timeLayout)
		}

		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), cp.UserID)
		f.SetCellValue(sheetName, cell("B", row), cp.LessonsCompleted)
		f.SetCellValue(sheetName, cell("C", row), cp.TotalLessons)
		f.SetCellValue(sheetName, cell("D", row), cp.CompletionPercentage)
		f.SetCellValue(sheetName, cell("E", row), cp.StartedAt.Format(timeLayout))
		f.SetCellValue(sheetName, cell("F", row), completedAt)
		f.SetCellValue(sheetName, cell("G", row), cp.LastAccessedAt.Format(timeLayout))
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学习进度_%s.xlsx", course.Title)
	return buf, filename, nil
}

// ────────────────────── ExportPlanCalendar ──────────────────────

func (s *exportService) ExportPlanCalendar(ctx context.Context, planID string) (*bytes.Buffer, string, error) {
	plan, err := s.repo.TrainingPlan.GetDetail(ctx, planID)
	if err != nil {
		return nil, "", lookupError(s.logger, err, resourceTrainingPlan, planID)
	}

	now := s.now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//progress-hub//training plan//ZH")
	cal.SetXWRCalName(fmt.Sprintf("Week %d", plan.WeekNumber))

	for _, w := range plan.Workouts {
		day := workoutDate(plan.StartDate, w.DayOfWeek)

		event := cal.AddEvent(w.WorkoutID + "@progress-hub")
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(w.WorkoutName)
		event.SetDescription(workoutDescription(&w))
		if w.Completed {
			event.SetStatus(ics.ObjectStatusCompleted)
		} else {
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("training_week_%d.ics", plan.WeekNumber)
	return buf, filename, nil
}

// workoutDate 计划起始日之后第一个与 dayOfWeek（0=周一）相同的日期
func workoutDate(start time.Time, dayOfWeek int) time.Time {
	startIdx := (int(start.Weekday()) + 6) % 7
	offset := (dayOfWeek - startIdx + 7) % 7
	return model.TruncateToDate(start).AddDate(0, 0, offset)
}

func workoutDescription(w *model.Workout) string {
	var b strings.Builder
	if w.Description != "" {
		b.WriteString(w.Description)
		b.WriteString("\n")
	}
	for _, e := range w.Exercises {
		fmt.Fprintf(&b, "%d. %s", e.OrderIndex+1, e.ExerciseName)
		if e.Sets > 0 || e.Reps > 0 {
			fmt.Fprintf(&b, " %dx%d", e.Sets, e.Reps)
		}
		if e.DurationSeconds != nil {
			fmt.Fprintf(&b, " %ds", *e.DurationSeconds)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ── 辅助函数 ──

func writeHeader(f *excelize.File, sheetName string, headers []string) {
	style, _ := f.NewStyle(headerStyleDef)
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), style)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
