package dto

import "college-admin/backend/internal/model"

// ── 成绩模块 DTO ──

// CreateGradeRequest 录入成绩请求
type CreateGradeRequest struct {
	StudentID string  `json:"studentId"`
	TaskCode  string  `json:"taskCode"`
	TaskGrade float64 `json:"taskGrade"`
}

// ToModel 转换为成绩记录
func (r *CreateGradeRequest) ToModel() *model.Grade {
	return &model.Grade{StudentID: r.StudentID, TaskCode: r.TaskCode, TaskGrade: r.TaskGrade}
}

// UpdateGradeRequest 修改成绩请求，(学生, 作业) 组合不可修改
type UpdateGradeRequest struct {
	TaskGrade float64 `json:"taskGrade"`
}

// GradeListRequest 成绩列表查询参数
type GradeListRequest struct {
	StudentID string `form:"student_id"`
	TaskCode  string `form:"task_code"`
}

// GradeView 成绩展示；学生或作业不存在时名称回退为原始编码
type GradeView struct {
	model.Grade
	StudentName string `json:"studentName"`
	TaskName    string `json:"taskName"`
	CourseCode  string `json:"courseCode,omitempty"`
}
