package validator

import (
	"testing"
	"time"

	"college-admin/backend/internal/model"
)

func fixedNow() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

func validStudent() *model.Student {
	return &model.Student{
		StudentID:        "111111111",
		FullName:         "Ann Lee",
		Age:              20,
		Gender:           model.GenderFemale,
		RegistrationYear: 2023,
	}
}

func TestStudent(t *testing.T) {
	v := New(fixedNow)

	tests := []struct {
		name      string
		mutate    func(s *model.Student)
		wantField string
	}{
		{"合法学生", func(s *model.Student) {}, ""},
		{"学号位数不足", func(s *model.Student) { s.StudentID = "12345" }, "studentId"},
		{"学号含字母", func(s *model.Student) { s.StudentID = "12345678a" }, "studentId"},
		{"姓名含数字", func(s *model.Student) { s.FullName = "Ann2" }, "fullName"},
		{"姓名为空白", func(s *model.Student) { s.FullName = "   " }, "fullName"},
		{"年龄过小", func(s *model.Student) { s.Age = 17 }, "age"},
		{"年龄过大", func(s *model.Student) { s.Age = 81 }, "age"},
		{"性别无效", func(s *model.Student) { s.Gender = "Other" }, "gender"},
		{"注册年份早于2020", func(s *model.Student) { s.RegistrationYear = 2019 }, "registrationYear"},
		{"注册年份晚于今年", func(s *model.Student) { s.RegistrationYear = 2026 }, "registrationYear"},
		{"选课编码无效", func(s *model.Student) { s.Courses = model.CodeSet{"1O1"} }, "courses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			tt.mutate(s)
			res := v.Student(s)
			if tt.wantField == "" {
				if !res.OK() {
					t.Errorf("期望通过，实际 %v", res)
				}
				return
			}
			if _, ok := res[tt.wantField]; !ok {
				t.Errorf("期望字段 %s 校验失败，实际 %v", tt.wantField, res)
			}
			if len(res) != 1 {
				t.Errorf("期望仅 1 个字段失败，实际 %v", res)
			}
		})
	}
}

func TestStudent_ChineseNameAllowed(t *testing.T) {
	v := New(fixedNow)
	s := validStudent()
	s.FullName = "李 安"
	if res := v.Student(s); !res.OK() {
		t.Errorf("期望中文姓名通过，实际 %v", res)
	}
}

func TestCourse(t *testing.T) {
	v := New(fixedNow)
	valid := model.Course{CourseCode: "101", CourseName: "Intro", Lecturer: "Dr X", Year: 2023, Semester: model.SemesterA}

	if res := v.Course(&valid); !res.OK() {
		t.Fatalf("期望通过，实际 %v", res)
	}

	c := valid
	c.CourseName = "Intro 2"
	c.Year = 2000
	c.Semester = "D"
	c.Lecturer = ""
	res := v.Course(&c)
	for _, f := range []string{"courseName", "year", "semester", "lecturer"} {
		if _, ok := res[f]; !ok {
			t.Errorf("期望字段 %s 校验失败，实际 %v", f, res)
		}
	}
	if res["courseName"] != "courseName只能包含字母和空格" {
		t.Errorf("courseName 提示不符: %q", res["courseName"])
	}
}

func TestTask_SubmissionDate(t *testing.T) {
	v := New(fixedNow)
	task := &model.Task{TaskCode: "201", CourseCode: "101", TaskName: "HW", TaskDescription: "d", SubmissionDate: "2025-03-11"}

	if res := v.Task(task, ModeCreate); !res.OK() {
		t.Fatalf("明天截止应通过，实际 %v", res)
	}

	task.SubmissionDate = "2025-03-10"
	if res := v.Task(task, ModeCreate); res["submissionDate"] != "截止日期必须晚于今天" {
		t.Errorf("今天截止创建时应失败，实际 %v", res)
	}
	if res := v.Task(task, ModeUpdate); !res.OK() {
		t.Errorf("编辑时不校验截止日期先后，实际 %v", res)
	}

	task.SubmissionDate = "10/03/2025"
	if res := v.Task(task, ModeUpdate); res["submissionDate"] != "submissionDate的格式必须是YYYY-MM-DD" {
		t.Errorf("格式错误提示不符，实际 %v", res)
	}
}

func TestGrade(t *testing.T) {
	v := New(fixedNow)

	for _, score := range []float64{0, 55.5, 100} {
		g := &model.Grade{StudentID: "111111111", TaskCode: "201", TaskGrade: score}
		if res := v.Grade(g); !res.OK() {
			t.Errorf("分数 %v 应通过，实际 %v", score, res)
		}
	}
	for _, score := range []float64{-1, 100.5} {
		g := &model.Grade{StudentID: "111111111", TaskCode: "201", TaskGrade: score}
		if _, ok := v.Grade(g)["taskGrade"]; !ok {
			t.Errorf("分数 %v 应失败", score)
		}
	}
}

func TestMessage_OptionalCodes(t *testing.T) {
	v := New(fixedNow)

	if res := v.Message(&model.Message{MessageContent: "hello"}); !res.OK() {
		t.Errorf("广播消息应通过，实际 %v", res)
	}
	res := v.Message(&model.Message{MessageContent: " ", CourseCode: "10", StudentID: "1"})
	for _, f := range []string{"messageContent", "courseCode", "studentId"} {
		if _, ok := res[f]; !ok {
			t.Errorf("期望字段 %s 校验失败，实际 %v", f, res)
		}
	}
	if err := res.Err(); err == nil {
		t.Error("期望 Err() 返回 ValidationError")
	}
}

func TestField(t *testing.T) {
	v := New(fixedNow)
	s := validStudent()
	s.Age = 10
	s.FullName = "X1"

	if msg := v.Field(s, "age", ModeCreate); msg == "" {
		t.Error("期望 age 返回失败原因")
	}
	if msg := v.Field(s, "gender", ModeCreate); msg != "" {
		t.Errorf("gender 合法，期望空，实际 %q", msg)
	}
	if msg := v.Field("not a record", "age", ModeCreate); msg != "" {
		t.Errorf("未知记录类型应返回空，实际 %q", msg)
	}
}

func TestMessage_CodeFormat(t *testing.T) {
	v := New(fixedNow)

	tests := []struct {
		code    string
		wantErr bool
	}{
		{"", false},
		{"notice-01", false},
		{"exam_2025", false},
		{"a/b", true},
		{"   ", true},
		{"a b", true},
		{"a?b", true},
	}
	for _, tt := range tests {
		res := v.Message(&model.Message{MessageCode: tt.code, MessageContent: "hello"})
		_, bad := res["messageCode"]
		if bad != tt.wantErr {
			t.Errorf("messageCode=%q 期望失败=%v，实际 %v", tt.code, tt.wantErr, res)
		}
	}
}

func TestField_CourseElements(t *testing.T) {
	v := New(fixedNow)
	s := validStudent()
	s.Courses = model.CodeSet{"101", "1O2"}

	if msg := v.Field(s, "courses", ModeCreate); msg == "" {
		t.Error("期望 courses 中的无效编码返回失败原因")
	}
	s.Courses = model.CodeSet{"101"}
	if msg := v.Field(s, "courses", ModeCreate); msg != "" {
		t.Errorf("courses 合法，期望空，实际 %q", msg)
	}
}
