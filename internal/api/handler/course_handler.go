package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/service"
	"college-admin/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 获取课程列表
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.List(c, courses, len(courses))
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:code
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, course)
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, course)
}

// UpdateCourse 编辑课程
// PUT /api/v1/courses/:code
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, course)
}

// DeleteCourse 删除课程（不级联）
// DELETE /api/v1/courses/:code
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleCourseError 统一处理课程模块业务错误
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrCourseExists):
		response.Conflict(c, 12002, "课程编码已存在")
	default:
		handleCommonError(c, err)
	}
}
