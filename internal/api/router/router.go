package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"college-admin/backend/config"
	"college-admin/backend/internal/api/handler"
	"college-admin/backend/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 学生模块
		students := v1.Group("/students")
		{
			students.GET("", h.Student.ListStudents)
			students.POST("", h.Student.CreateStudent)
			students.GET("/:id", h.Student.GetStudent)
			students.PUT("/:id", h.Student.UpdateStudent)
			students.DELETE("/:id", h.Student.DeleteStudent)
			students.GET("/:id/courses", h.Student.ListStudentCourses)
			students.GET("/:id/messages", h.Message.ListStudentMessages)
			students.GET("/:id/calendar.ics", h.Export.ExportStudentCalendar)
		}

		// 课程模块（含选课关系）
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.POST("", h.Course.CreateCourse)
			courses.GET("/:code", h.Course.GetCourse)
			courses.PUT("/:code", h.Course.UpdateCourse)
			courses.DELETE("/:code", h.Course.DeleteCourse)
			courses.GET("/:code/tasks", h.Task.ListCourseTasks)
			courses.GET("/:code/students", h.Enrollment.ListCourseStudents)
			courses.PUT("/:code/students/:studentId", h.Enrollment.AssignStudent)
			courses.DELETE("/:code/students/:studentId", h.Enrollment.UnassignStudent)
			courses.GET("/:code/grades.xlsx", h.Export.ExportCourseGrades)
		}

		// 作业模块
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.POST("", h.Task.CreateTask)
			tasks.GET("/:code", h.Task.GetTask)
			tasks.PUT("/:code", h.Task.UpdateTask)
			tasks.DELETE("/:code", h.Task.DeleteTask)
		}

		// 成绩模块
		grades := v1.Group("/grades")
		{
			grades.GET("", h.Grade.ListGrades)
			grades.POST("", h.Grade.CreateGrade)
			grades.GET("/:id", h.Grade.GetGrade)
			grades.PUT("/:id", h.Grade.UpdateGrade)
			grades.DELETE("/:id", h.Grade.DeleteGrade)
		}

		// 消息模块
		messages := v1.Group("/messages")
		{
			messages.GET("", h.Message.ListMessages)
			messages.POST("", h.Message.CreateMessage)
			messages.GET("/:id", h.Message.GetMessage)
			messages.PUT("/:id", h.Message.UpdateMessage)
			messages.DELETE("/:id", h.Message.DeleteMessage)
			messages.GET("/:id/audience", h.Message.GetAudience)
			messages.POST("/:id/read", h.Message.MarkRead)
		}

		// 表单字段即时校验
		v1.POST("/validate/:entity", h.Validate.Validate)
	}

	return r
}
