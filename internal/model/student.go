package model

// 性别枚举
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Student 学生 — 集合 students，自然键 studentId（9 位数字，创建后不可变）
// Courses 是选课关系的唯一来源，只能经由选课服务修改
type Student struct {
	StudentID        string  `json:"studentId" validate:"required,len=9,number"`
	FullName         string  `json:"fullName" validate:"nonblank,alphaspace"`
	Age              int     `json:"age" validate:"required,min=18,max=80"`
	Gender           string  `json:"gender" validate:"required,oneof=Male Female"`
	RegistrationYear int     `json:"registrationYear" validate:"required,regyear"`
	Courses          CodeSet `json:"courses" validate:"omitempty,dive,len=3,number"`
	Timestamps
}

// Key 返回自然键
func (s *Student) Key() string { return s.StudentID }
