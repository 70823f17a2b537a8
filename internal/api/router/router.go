package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"progress-hub/backend/config"
	"progress-hub/backend/internal/api/handler"
	"progress-hub/backend/internal/api/middleware"
	"progress-hub/backend/pkg/jwt"
	"progress-hub/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时 Token 黑名单与限流均降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	limit := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	adminOnly := middleware.RoleAuth("admin")
	staffOnly := middleware.RoleAuth("admin", "trainer")

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/refresh", limit, h.Auth.RefreshToken)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 训练模块
			training := authorized.Group("/training")
			{
				training.POST("/trainers", adminOnly, h.Trainer.Create)
				training.GET("/trainers", h.Trainer.List)
				training.GET("/trainers/:id", h.Trainer.GetByID)

				training.POST("/plans", staffOnly, h.Training.CreatePlan)
				training.GET("/plans/current", h.Training.CurrentWeekPlan)
				training.GET("/plans/history", h.Training.PlanHistory)
				training.GET("/plans/:id", h.Training.GetPlan)
				training.PUT("/plans/:id/trainer", staffOnly, h.Training.AssignTrainer)
				training.POST("/plans/:id/summary", h.Training.GenerateSummary)
				training.GET("/plans/:id/calendar", h.Export.ExportPlanCalendar)

				training.PUT("/workouts/:id/complete", limit, h.Training.SetWorkoutCompletion)

				training.POST("/exercises/:id/logs", limit, h.Training.LogExercise)
				training.GET("/exercises/:id/logs", h.Training.ExerciseHistory)
				training.POST("/exercises/:id/video/upload-url", staffOnly, h.Media.ExerciseVideoUploadURL)
				training.PUT("/exercises/:id/video", staffOnly, h.Media.SaveExerciseVideo)
				training.GET("/exercises/:id/video", h.Media.GetExerciseVideo)

				training.GET("/export/history", h.Export.ExportTrainingHistory)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.List)
				courses.POST("", adminOnly, h.Course.Create)
				courses.GET("/:id", h.Course.Get)
				courses.PUT("/:id", adminOnly, h.Course.Update)
				courses.DELETE("/:id", adminOnly, h.Course.Delete)

				courses.POST("/:id/enroll", limit, h.Course.Enroll)
				courses.GET("/:id/enrollment-status", h.Course.EnrollmentStatus)
				courses.GET("/:id/prerequisites-met", h.Course.PrerequisitesMet)
				courses.GET("/:id/progress", h.Course.Progress)
				courses.POST("/:id/progress/recompute", limit, h.Course.RecomputeProgress)
				courses.GET("/:id/export/progress", adminOnly, h.Export.ExportCourseProgress)
			}

			// 章节
			modules := authorized.Group("/modules")
			{
				modules.GET("", h.Catalog.ListModules)
				modules.POST("", adminOnly, h.Catalog.CreateModule)
				modules.GET("/:id", h.Catalog.GetModule)
				modules.PUT("/:id", adminOnly, h.Catalog.UpdateModule)
				modules.DELETE("/:id", adminOnly, h.Catalog.DeleteModule)
			}

			// 课时
			lessons := authorized.Group("/lessons")
			{
				lessons.GET("", h.Catalog.ListLessons)
				lessons.POST("", adminOnly, h.Catalog.CreateLesson)
				lessons.GET("/:id", h.Catalog.GetLesson)
				lessons.PUT("/:id", adminOnly, h.Catalog.UpdateLesson)
				lessons.DELETE("/:id", adminOnly, h.Catalog.DeleteLesson)
				lessons.POST("/:id/video/upload-url", adminOnly, h.Media.LessonVideoUploadURL)
				lessons.PUT("/:id/video", adminOnly, h.Media.AttachLessonVideo)
				lessons.GET("/:id/video-url", h.Media.LessonVideoURL)
			}

			// 先修条件
			prerequisites := authorized.Group("/prerequisites")
			{
				prerequisites.GET("", h.Catalog.ListPrerequisites)
				prerequisites.POST("", adminOnly, h.Catalog.CreatePrerequisite)
				prerequisites.DELETE("/:id", adminOnly, h.Catalog.DeletePrerequisite)
			}

			// 选课记录（非管理员仅限本人，Service 层鉴权）
			enrollments := authorized.Group("/enrollments")
			{
				enrollments.GET("", h.Progress.ListEnrollments)
				enrollments.GET("/:id", h.Progress.GetEnrollment)
				enrollments.DELETE("/:id", limit, h.Progress.Unenroll)
				enrollments.POST("/:id/mark-started", limit, h.Progress.MarkEnrollmentStarted)
				enrollments.POST("/:id/mark-completed", limit, h.Progress.MarkEnrollmentCompleted)
			}

			// 学习进度
			lessonProgress := authorized.Group("/lesson-progress")
			{
				lessonProgress.GET("", h.Progress.ListLessonProgress)
				lessonProgress.POST("", limit, h.Progress.StartLesson)
				lessonProgress.GET("/:id", h.Progress.GetLessonProgress)
				lessonProgress.POST("/:id/watch-progress", limit, h.Progress.UpdateWatchProgress)
				lessonProgress.POST("/:id/complete", limit, h.Progress.MarkLessonCompleted)
			}

			authorized.GET("/course-progress", h.Progress.ListCourseProgress)
		}
	}

	return r
}
