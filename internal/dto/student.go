package dto

import "college-admin/backend/internal/model"

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求；courses 可选，作为初始选课列表
type CreateStudentRequest struct {
	StudentID        string   `json:"studentId"`
	FullName         string   `json:"fullName"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	RegistrationYear int      `json:"registrationYear"`
	Courses          []string `json:"courses"`
}

// ToModel 转换为学生记录
func (r *CreateStudentRequest) ToModel() *model.Student {
	return &model.Student{
		StudentID:        r.StudentID,
		FullName:         r.FullName,
		Age:              r.Age,
		Gender:           r.Gender,
		RegistrationYear: r.RegistrationYear,
		Courses:          model.CodeSet(r.Courses).Normalize(),
	}
}

// UpdateStudentRequest 编辑学生请求（整条替换表单字段，学号与选课不可在此修改）
type UpdateStudentRequest struct {
	FullName         string `json:"fullName"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	RegistrationYear int    `json:"registrationYear"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	StudentID        string   `json:"studentId"`
	FullName         string   `json:"fullName"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	RegistrationYear int      `json:"registrationYear"`
	Courses          []string `json:"courses"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// NewStudentResponse 由学生记录构造响应
func NewStudentResponse(s *model.Student) *StudentResponse {
	courses := []string(s.Courses)
	if courses == nil {
		courses = []string{}
	}
	return &StudentResponse{
		StudentID:        s.StudentID,
		FullName:         s.FullName,
		Age:              s.Age,
		Gender:           s.Gender,
		RegistrationYear: s.RegistrationYear,
		Courses:          courses,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// EnrolledCourse 学生已选课程；课程已删除时 courseName 回退为原始编码，Missing 为 true
type EnrolledCourse struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Lecturer   string `json:"lecturer,omitempty"`
	Year       int    `json:"year,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Missing    bool   `json:"missing,omitempty"`
}
