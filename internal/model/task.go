package model

import "time"

// DateLayout 日期字段格式
const DateLayout = "2006-01-02"

// Task 作业 — 集合 tasks，自然键 taskCode（3 位数字）
// CourseCode 为单向外键，课程删除后不级联
type Task struct {
	TaskCode        string `json:"taskCode" validate:"required,len=3,number"`
	CourseCode      string `json:"courseCode" validate:"required,len=3,number"`
	TaskName        string `json:"taskName" validate:"nonblank"`
	SubmissionDate  string `json:"submissionDate" validate:"required,datetime=2006-01-02"`
	TaskDescription string `json:"taskDescription" validate:"nonblank"`
	Timestamps
}

// Key 返回自然键
func (t *Task) Key() string { return t.TaskCode }

// Due 解析截止日期；格式无效时返回零值与 false
func (t *Task) Due() (time.Time, bool) {
	d, err := time.Parse(DateLayout, t.SubmissionDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
