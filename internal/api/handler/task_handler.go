package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/service"
	"college-admin/backend/pkg/response"
)

// TaskHandler 作业模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// ListTasks 获取作业列表
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskSvc.List(c.Request.Context())
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.List(c, tasks, len(tasks))
}

// ListCourseTasks 获取课程下的作业（课程已删除时仍返回）
// GET /api/v1/courses/:code/tasks
func (h *TaskHandler) ListCourseTasks(c *gin.Context) {
	tasks, err := h.taskSvc.ListByCourse(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.List(c, tasks, len(tasks))
}

// GetTask 获取作业详情
// GET /api/v1/tasks/:code
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// CreateTask 创建作业
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.Created(c, task)
}

// UpdateTask 编辑作业
// PUT /api/v1/tasks/:code
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// DeleteTask 删除作业
// DELETE /api/v1/tasks/:code
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskSvc.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTaskError 统一处理作业模块业务错误
func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 13001, "作业不存在")
	case errors.Is(err, service.ErrTaskExists):
		response.Conflict(c, 13002, "作业编码已存在")
	default:
		handleCommonError(c, err)
	}
}
