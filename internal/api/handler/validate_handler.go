package handler

import (
	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/model"
	"college-admin/backend/internal/validator"
	"college-admin/backend/pkg/response"
)

// ValidateHandler 表单校验 HTTP 处理器（失焦时逐字段校验，提交前整体校验）
type ValidateHandler struct {
	v *validator.Validator
}

// NewValidateHandler 创建 ValidateHandler
func NewValidateHandler(v *validator.Validator) *ValidateHandler {
	return &ValidateHandler{v: v}
}

// Validate 按实体类型校验请求体，不写入存储
// POST /api/v1/validate/:entity?field=&mode=create|update
func (h *ValidateHandler) Validate(c *gin.Context) {
	var q dto.ValidateRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, codeBadRequest, "查询参数错误")
		return
	}
	mode := validator.ModeCreate
	if q.Mode == "update" {
		mode = validator.ModeUpdate
	}

	var record any
	switch c.Param("entity") {
	case "students":
		record = &model.Student{}
	case "courses":
		record = &model.Course{}
	case "tasks":
		record = &model.Task{}
	case "grades":
		record = &model.Grade{}
	case "messages":
		record = &model.Message{}
	default:
		response.NotFound(c, 10003, "未知的实体类型")
		return
	}
	if !bindJSON(c, record, "请求格式错误") {
		return
	}

	fields := map[string]string{}
	if q.Field != "" {
		if msg := h.v.Field(record, q.Field, mode); msg != "" {
			fields[q.Field] = msg
		}
	} else {
		fields = h.v.Check(record, mode)
	}
	response.OK(c, dto.ValidateResponse{Valid: len(fields) == 0, Fields: fields})
}
