package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/service"
	"college-admin/backend/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// ListGrades 获取成绩列表，可按 student_id / task_code 过滤
// GET /api/v1/grades
func (h *GradeHandler) ListGrades(c *gin.Context) {
	var req dto.GradeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeBadRequest, "查询参数错误")
		return
	}

	grades, err := h.gradeSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}
	response.List(c, grades, len(grades))
}

// GetGrade 获取成绩详情
// GET /api/v1/grades/:id
func (h *GradeHandler) GetGrade(c *gin.Context) {
	grade, err := h.gradeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleGradeError(c, err)
		return
	}
	response.OK(c, grade)
}

// CreateGrade 录入成绩
// POST /api/v1/grades
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	var req dto.CreateGradeRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	grade, err := h.gradeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}
	response.Created(c, grade)
}

// UpdateGrade 修改分数
// PUT /api/v1/grades/:id
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	var req dto.UpdateGradeRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	grade, err := h.gradeSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}
	response.OK(c, grade)
}

// DeleteGrade 删除成绩
// DELETE /api/v1/grades/:id
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	if err := h.gradeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleGradeError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleGradeError 统一处理成绩模块业务错误
func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradeNotFound):
		response.NotFound(c, 14001, "成绩不存在")
	case errors.Is(err, service.ErrGradeExists):
		response.Conflict(c, 14002, "该学生此作业的成绩已存在")
	default:
		handleCommonError(c, err)
	}
}
