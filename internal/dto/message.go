package dto

import "college-admin/backend/internal/model"

// ── 消息模块 DTO ──

// CreateMessageRequest 发送消息请求；studentId 为空表示按课程/作业定向或全体广播
type CreateMessageRequest struct {
	MessageCode    string `json:"messageCode"`
	MessageContent string `json:"messageContent"`
	CourseCode     string `json:"courseCode"`
	AssignmentCode string `json:"assignmentCode"`
	StudentID      string `json:"studentId"`
}

// ToModel 转换为消息记录
func (r *CreateMessageRequest) ToModel() *model.Message {
	return &model.Message{
		MessageCode:    r.MessageCode,
		MessageContent: r.MessageContent,
		CourseCode:     r.CourseCode,
		AssignmentCode: r.AssignmentCode,
		StudentID:      r.StudentID,
	}
}

// UpdateMessageRequest 编辑消息请求（键不可修改，已读记录保留）
type UpdateMessageRequest struct {
	MessageContent string `json:"messageContent"`
	CourseCode     string `json:"courseCode"`
	AssignmentCode string `json:"assignmentCode"`
	StudentID      string `json:"studentId"`
}

// MarkReadRequest 标记已读请求
type MarkReadRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

// StudentMessagesRequest 学生消息列表查询参数
type StudentMessagesRequest struct {
	Unread bool `form:"unread"`
}

// MessageView 消息展示（学生视角带已读状态）
type MessageView struct {
	model.Message
	CourseName string `json:"courseName,omitempty"`
	TaskName   string `json:"taskName,omitempty"`
	Read       bool   `json:"read"`
}

// AudienceResponse 消息当前受众
type AudienceResponse struct {
	MessageKey string            `json:"messageKey"`
	Broadcast  bool              `json:"broadcast"`
	Students   []StudentResponse `json:"students"`
}
