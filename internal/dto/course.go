package dto

import "college-admin/backend/internal/model"

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Lecturer   string `json:"lecturer"`
	Year       int    `json:"year"`
	Semester   string `json:"semester"`
}

// ToModel 转换为课程记录
func (r *CreateCourseRequest) ToModel() *model.Course {
	return &model.Course{
		CourseCode: r.CourseCode,
		CourseName: r.CourseName,
		Lecturer:   r.Lecturer,
		Year:       r.Year,
		Semester:   r.Semester,
	}
}

// UpdateCourseRequest 编辑课程请求（课程编码不可修改）
type UpdateCourseRequest struct {
	CourseName string `json:"courseName"`
	Lecturer   string `json:"lecturer"`
	Year       int    `json:"year"`
	Semester   string `json:"semester"`
}
