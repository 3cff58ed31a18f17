package model

// Message 消息 — 集合 messages
// 有 messageCode 时以其为键，否则使用存储生成的 ID。
// 受众在读取时按 studentId / courseCode / assignmentCode 动态计算，不做按人复制。
type Message struct {
	ID             string  `json:"id,omitempty"`
	MessageCode    string  `json:"messageCode,omitempty" validate:"omitempty,max=64,msgcode"`
	MessageContent string  `json:"messageContent" validate:"nonblank"`
	CourseCode     string  `json:"courseCode,omitempty" validate:"omitempty,len=3,number"`
	AssignmentCode string  `json:"assignmentCode,omitempty" validate:"omitempty,len=3,number"`
	StudentID      string  `json:"studentId,omitempty" validate:"omitempty,len=9,number"`
	ReadBy         CodeSet `json:"readBy,omitempty"`
	Timestamps
}

// Key 返回存储键
func (m *Message) Key() string {
	if m.MessageCode != "" {
		return m.MessageCode
	}
	return m.ID
}

// IsBroadcast 三个定向字段均为空
func (m *Message) IsBroadcast() bool {
	return m.StudentID == "" && m.CourseCode == "" && m.AssignmentCode == ""
}
