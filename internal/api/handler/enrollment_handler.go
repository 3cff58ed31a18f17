package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/service"
	"college-admin/backend/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// ListCourseStudents 获取课程选课名单
// GET /api/v1/courses/:code/students
func (h *EnrollmentHandler) ListCourseStudents(c *gin.Context) {
	students, err := h.enrollmentSvc.ListEnrolledStudents(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.List(c, students, len(students))
}

// AssignStudent 学生选课
// PUT /api/v1/courses/:code/students/:studentId
func (h *EnrollmentHandler) AssignStudent(c *gin.Context) {
	student, err := h.enrollmentSvc.AssignStudent(c.Request.Context(), c.Param("studentId"), c.Param("code"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.OK(c, student)
}

// UnassignStudent 学生退课（未选时为空操作）
// DELETE /api/v1/courses/:code/students/:studentId
func (h *EnrollmentHandler) UnassignStudent(c *gin.Context) {
	student, err := h.enrollmentSvc.UnassignStudent(c.Request.Context(), c.Param("studentId"), c.Param("code"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.OK(c, student)
}

// handleEnrollmentError 统一处理选课模块业务错误
func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11001, "学生不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 15001, "学生已选该课程")
	default:
		handleCommonError(c, err)
	}
}
