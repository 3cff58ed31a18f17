package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/service"
	"college-admin/backend/pkg/response"
)

// MessageHandler 消息模块 HTTP 处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建 MessageHandler
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// ListMessages 管理员视角的全部消息
// GET /api/v1/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	msgs, err := h.messageSvc.List(c.Request.Context())
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.List(c, msgs, len(msgs))
}

// GetMessage 获取消息详情
// GET /api/v1/messages/:id
func (h *MessageHandler) GetMessage(c *gin.Context) {
	msg, err := h.messageSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, msg)
}

// CreateMessage 发送消息（只保存一条记录，受众在读取时计算）
// POST /api/v1/messages
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req dto.CreateMessageRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	msg, err := h.messageSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.Created(c, msg)
}

// UpdateMessage 编辑消息
// PUT /api/v1/messages/:id
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	var req dto.UpdateMessageRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	msg, err := h.messageSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, msg)
}

// DeleteMessage 删除消息
// DELETE /api/v1/messages/:id
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.messageSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, nil)
}

// GetAudience 消息当前受众
// GET /api/v1/messages/:id/audience
func (h *MessageHandler) GetAudience(c *gin.Context) {
	audience, err := h.messageSvc.ResolveAudience(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, audience)
}

// MarkRead 标记已读
// POST /api/v1/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadRequest
	if !bindJSON(c, &req, "studentId 不能为空") {
		return
	}

	msg, err := h.messageSvc.MarkRead(c.Request.Context(), c.Param("id"), req.StudentID)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, msg)
}

// ListStudentMessages 学生视角的消息，unread=true 时只返回未读
// GET /api/v1/students/:id/messages
func (h *MessageHandler) ListStudentMessages(c *gin.Context) {
	var req dto.StudentMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeBadRequest, "查询参数错误")
		return
	}

	msgs, err := h.messageSvc.ListForStudent(c.Request.Context(), c.Param("id"), req.Unread)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.List(c, msgs, len(msgs))
}

// handleMessageError 统一处理消息模块业务错误
func (h *MessageHandler) handleMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		response.NotFound(c, 16001, "消息不存在")
	case errors.Is(err, service.ErrMessageNotVisible):
		response.NotFound(c, 16003, "该学生不在消息受众内")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11001, "学生不存在")
	case errors.Is(err, service.ErrMessageExists):
		response.Conflict(c, 16002, "消息编码已存在")
	default:
		handleCommonError(c, err)
	}
}
