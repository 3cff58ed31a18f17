package model

// Grade 成绩 — 集合 grades，存储生成 ID
// (studentId, taskCode) 组合唯一，创建后不可变
type Grade struct {
	ID        string  `json:"id,omitempty"`
	StudentID string  `json:"studentId" validate:"required,len=9,number"`
	TaskCode  string  `json:"taskCode" validate:"required,len=3,number"`
	TaskGrade float64 `json:"taskGrade" validate:"min=0,max=100"`
	Timestamps
}

// PairKey 返回 (学生, 作业) 组合键
func (g *Grade) PairKey() string { return g.StudentID + "/" + g.TaskCode }
