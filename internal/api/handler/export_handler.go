package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/service"
	"college-admin/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCourseGrades 导出课程成绩表
// GET /api/v1/courses/:code/grades.xlsx
func (h *ExportHandler) ExportCourseGrades(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCourseGrades(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportStudentCalendar 导出学生作业日历
// GET /api/v1/students/:id/calendar.ics
func (h *ExportHandler) ExportStudentCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportStudentCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	attachment(c, filename, contentTypeICS, buf.Bytes())
}

// attachment 设置下载响应头并写入文件内容
func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11001, "学生不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleCommonError(c, err)
	}
}
