package dto

import "college-admin/backend/internal/model"

// ── 作业模块 DTO ──

// CreateTaskRequest 创建作业请求
type CreateTaskRequest struct {
	TaskCode        string `json:"taskCode"`
	CourseCode      string `json:"courseCode"`
	TaskName        string `json:"taskName"`
	SubmissionDate  string `json:"submissionDate"`
	TaskDescription string `json:"taskDescription"`
}

// ToModel 转换为作业记录
func (r *CreateTaskRequest) ToModel() *model.Task {
	return &model.Task{
		TaskCode:        r.TaskCode,
		CourseCode:      r.CourseCode,
		TaskName:        r.TaskName,
		SubmissionDate:  r.SubmissionDate,
		TaskDescription: r.TaskDescription,
	}
}

// UpdateTaskRequest 编辑作业请求（作业编码不可修改）
type UpdateTaskRequest struct {
	CourseCode      string `json:"courseCode"`
	TaskName        string `json:"taskName"`
	SubmissionDate  string `json:"submissionDate"`
	TaskDescription string `json:"taskDescription"`
}

// TaskView 作业展示；所属课程不存在时 courseName 回退为原始 courseCode
type TaskView struct {
	model.Task
	CourseName string `json:"courseName"`
}
