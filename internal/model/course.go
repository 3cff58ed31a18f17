package model

// 学期枚举
const (
	SemesterA = "A"
	SemesterB = "B"
	SemesterC = "C"
)

// Course 课程 — 集合 courses，自然键 courseCode（3 位数字）
// 课程本身不保存成员列表
type Course struct {
	CourseCode string `json:"courseCode" validate:"required,len=3,number"`
	CourseName string `json:"courseName" validate:"nonblank,alphaspace"`
	Lecturer   string `json:"lecturer" validate:"nonblank"`
	Year       int    `json:"year" validate:"required,min=2001,max=9999"`
	Semester   string `json:"semester" validate:"required,oneof=A B C"`
	Timestamps
}

// Key 返回自然键
func (c *Course) Key() string { return c.CourseCode }
