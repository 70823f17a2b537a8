package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"progress-hub/backend/internal/model"
	apperr "progress-hub/backend/pkg/errors"
)

func setupTestExportService() (*exportService, *memDB) {
	repo, db := newTestRepository()
	svc := NewExportService(repo, zap.NewNop()).(*exportService)
	svc.now = newFakeClock().Now
	return svc, db
}

func TestExportService_TrainingHistory_NoData(t *testing.T) {
	svc, _ := setupTestExportService()
	if _, _, err := svc.ExportTrainingHistory(context.Background(), "user-1"); !errors.Is(err, ErrExportNoData) {
		t.Fatalf("无计划时应返回 ErrExportNoData，实际: %v", err)
	}
}

func TestExportService_TrainingHistory_Excel(t *testing.T) {
	svc, db := setupTestExportService()
	ctx := context.Background()

	// 较早的计划已生成汇总，较新的计划即时统计
	older := seedPlan(db, "user-1", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), true, true, true, true, true)
	db.summaries[older.PlanID] = &model.WeeklySummary{
		SummaryID: "summary-x", PlanID: older.PlanID, TotalWorkouts: 5, CompletedWorkouts: 5,
		CompletionPercentage: 100, TrainerFeedback: feedbackOutstanding,
	}
	seedPlan(db, "user-1", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), true, true, false, false, false)

	buf, filename, err := svc.ExportTrainingHistory(ctx, "user-1")
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应为 xlsx，实际 %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件无法解析: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("训练记录", "A1"); v != "周次" {
		t.Errorf("表头不符，A1=%s", v)
	}
	if v, _ := f.GetCellValue("训练记录", "B2"); v != "2024-03-11" {
		t.Errorf("首行应为最新计划，B2=%s", v)
	}
	if e, _ := f.GetCellValue("训练记录", "E2"); e != "2" {
		t.Errorf("即时统计的已完成训练应为 2，实际 %s", e)
	}
	if v, _ := f.GetCellValue("训练记录", "I3"); v != feedbackOutstanding {
		t.Errorf("已有汇总的计划应使用汇总反馈，实际 %s", v)
	}
	if len(db.summaries) != 1 {
		t.Error("导出不应写入新的汇总")
	}
}

func TestExportService_CourseProgress_Excel(t *testing.T) {
	svc, db := setupTestExportService()
	ctx := context.Background()
	course, _, _ := seedCourse(db, "Go 入门", 2)

	if _, _, err := svc.ExportCourseProgress(ctx, "course-missing"); !apperr.IsNotFound(err) {
		t.Fatalf("课程不存在应返回 NotFoundError，实际: %v", err)
	}
	if _, _, err := svc.ExportCourseProgress(ctx, course.CourseID); !errors.Is(err, ErrExportNoData) {
		t.Fatalf("无学员时应返回 ErrExportNoData，实际: %v", err)
	}

	(&mockCourseProgressRepo{db: db}).Create(ctx, &model.CourseProgress{
		UserID: "user-1", CourseID: course.CourseID, LessonsCompleted: 1, TotalLessons: 2, CompletionPercentage: 50,
	})
	buf, filename, err := svc.ExportCourseProgress(ctx, course.CourseID)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename != "学习进度_Go 入门.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件无法解析: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("学习进度", "A2"); v != "user-1" {
		t.Errorf("A2 应为学员 ID，实际 %s", v)
	}
	if v, _ := f.GetCellValue("学习进度", "F2"); v != "-" {
		t.Errorf("未完成课程的完成时间应为 -，实际 %s", v)
	}
}

func TestExportService_PlanCalendar(t *testing.T) {
	svc, db := setupTestExportService()
	ctx := context.Background()
	plan := seedPlan(db, "user-1", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), true, false)

	buf, filename, err := svc.ExportPlanCalendar(ctx, plan.PlanID)
	if err != nil {
		t.Fatalf("导出日历失败: %v", err)
	}
	if filename != "training_week_1.ics" {
		t.Errorf("文件名不符: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("应为 iCalendar 格式")
	}
	if n := strings.Count(content, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("每个课表应对应一个事件，期望 2，实际 %d", n)
	}
	if !strings.Contains(content, "20240311") || !strings.Contains(content, "20240312") {
		t.Errorf("事件日期应按 day_of_week 落在计划周内:\n%s", content)
	}
	if !strings.Contains(content, "COMPLETED") {
		t.Error("已完成课表应标记为 COMPLETED")
	}

	if _, _, err := svc.ExportPlanCalendar(ctx, "plan-missing"); !apperr.IsNotFound(err) {
		t.Errorf("计划不存在应返回 NotFoundError，实际: %v", err)
	}
}

func TestWorkoutDate(t *testing.T) {
	start := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC) // 周三
	cases := map[int]string{
		0: "2024-03-18",
		2: "2024-03-13",
		3: "2024-03-14",
		6: "2024-03-17",
	}
	for day, want := range cases {
		if got := workoutDate(start, day).Format(model.DateLayout); got != want {
			t.Errorf("day_of_week=%d 期望 %s，实际 %s", day, want, got)
		}
	}
}
