package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/service"
	apperrors "college-admin/backend/pkg/errors"
	"college-admin/backend/pkg/response"
)

// 通用错误码
const (
	codeBadRequest       = 10001
	codeValidationFailed = 10002
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Student    *StudentHandler
	Course     *CourseHandler
	Task       *TaskHandler
	Grade      *GradeHandler
	Enrollment *EnrollmentHandler
	Message    *MessageHandler
	Export     *ExportHandler
	Validate   *ValidateHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Student:    NewStudentHandler(svc.Student),
		Course:     NewCourseHandler(svc.Course),
		Task:       NewTaskHandler(svc.Task),
		Grade:      NewGradeHandler(svc.Grade),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Message:    NewMessageHandler(svc.Message),
		Export:     NewExportHandler(svc.Export),
		Validate:   NewValidateHandler(svc.Validator),
	}
}

// handleCommonError 处理各模块共有的错误：字段校验失败、存储失败，其余按内部错误返回
func handleCommonError(c *gin.Context, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		response.ValidationFailed(c, codeValidationFailed, ve.Fields)
		return
	}
	if apperrors.IsStore(err) {
		response.StoreUnavailable(c)
		return
	}
	response.InternalError(c)
}

// bindJSON 绑定请求体；失败时写出响应并返回 false。
// 请求体超过 BodyLimit 时返回 413，其余解析失败返回 400 + msg
func bindJSON(c *gin.Context, obj any, msg string) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.PayloadTooLarge(c)
		return false
	}
	response.BadRequest(c, codeBadRequest, msg)
	return false
}
