package service

import (
	"context"
	"errors"
	"testing"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/store"
	"college-admin/backend/internal/store/local"
	"college-admin/backend/internal/store/memory"
)

// 同一组业务规则在不同存储后端上的表现必须一致
var testBackends = []struct {
	name string
	open func() store.Store
}{
	{"memory", func() store.Store { return memory.New() }},
	{"local", func() store.Store { return local.New(local.NewMemoryBlob()) }},
}

func TestBackends_AssignTwice(t *testing.T) {
	for _, b := range testBackends {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := setupTestServiceOn(b.open())
			ctx := context.Background()
			mustCreateCourse(t, svc, "101", "Intro")
			mustCreateStudent(t, svc, "111111111", "Ann Lee")

			if _, err := svc.Enrollment.AssignStudent(ctx, "111111111", "101"); err != nil {
				t.Fatalf("第一次 AssignStudent 应成功: %v", err)
			}
			if _, err := svc.Enrollment.AssignStudent(ctx, "111111111", "101"); !errors.Is(err, ErrAlreadyEnrolled) {
				t.Errorf("期望 ErrAlreadyEnrolled，实际: %v", err)
			}

			students, err := svc.Enrollment.ListEnrolledStudents(ctx, "101")
			if err != nil {
				t.Fatalf("ListEnrolledStudents 应成功: %v", err)
			}
			if len(students) != 1 || len(students[0].Courses) != 1 {
				t.Errorf("期望 1 名学生且只选 1 门课，实际 %+v", students)
			}
		})
	}
}

func TestBackends_GradePairAndUpdate(t *testing.T) {
	for _, b := range testBackends {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := setupTestServiceOn(b.open())
			ctx := context.Background()
			mustCreateCourse(t, svc, "101", "Intro")
			mustCreateStudent(t, svc, "111111111", "Ann Lee", "101")
			mustCreateTask(t, svc, "201", "101", "2025-04-01")

			first, err := svc.Grade.Create(ctx, &dto.CreateGradeRequest{StudentID: "111111111", TaskCode: "201", TaskGrade: 70})
			if err != nil {
				t.Fatalf("Create 应成功: %v", err)
			}
			if first.ID == "" {
				t.Fatal("期望生成成绩 ID")
			}
			_, err = svc.Grade.Create(ctx, &dto.CreateGradeRequest{StudentID: "111111111", TaskCode: "201", TaskGrade: 80})
			if !errors.Is(err, ErrGradeExists) {
				t.Errorf("期望 ErrGradeExists，实际: %v", err)
			}

			updated, err := svc.Grade.Update(ctx, first.ID, &dto.UpdateGradeRequest{TaskGrade: 90})
			if err != nil {
				t.Fatalf("Update 应成功: %v", err)
			}
			if updated.ID != first.ID || updated.TaskGrade != 90 {
				t.Errorf("更新结果不符: %+v", updated)
			}

			list, _ := svc.Grade.List(ctx, &dto.GradeListRequest{})
			if len(list) != 1 || list[0].TaskGrade != 90 {
				t.Errorf("期望仅 1 条成绩且分数为 90，实际 %+v", list)
			}
		})
	}
}

func TestBackends_GeneratedMessageMarkRead(t *testing.T) {
	for _, b := range testBackends {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := setupTestServiceOn(b.open())
			ctx := context.Background()
			mustCreateCourse(t, svc, "101", "Intro")
			mustCreateStudent(t, svc, "111111111", "Ann Lee", "101")

			msg, err := svc.Message.Create(ctx, &dto.CreateMessageRequest{MessageContent: "Welcome", CourseCode: "101"})
			if err != nil {
				t.Fatalf("Create 应成功: %v", err)
			}
			if msg.ID == "" || msg.MessageCode != "" {
				t.Fatalf("期望使用生成 ID，实际 %+v", msg)
			}

			if _, err := svc.Message.MarkRead(ctx, msg.ID, "111111111"); err != nil {
				t.Fatalf("MarkRead 应成功: %v", err)
			}

			all, _ := svc.Message.List(ctx)
			if len(all) != 1 {
				t.Fatalf("期望仍只有 1 条消息，实际 %d", len(all))
			}
			stored, err := svc.Message.Get(ctx, msg.ID)
			if err != nil {
				t.Fatalf("Get 应成功: %v", err)
			}
			if len(stored.ReadBy) != 1 || stored.ReadBy[0] != "111111111" {
				t.Errorf("期望 readBy=[111111111]，实际 %v", stored.ReadBy)
			}
		})
	}
}

func TestBackends_DeleteDoesNotCascade(t *testing.T) {
	for _, b := range testBackends {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := setupTestServiceOn(b.open())
			ctx := context.Background()
			mustCreateCourse(t, svc, "101", "Intro")
			mustCreateTask(t, svc, "201", "101", "2025-04-01")

			if _, err := svc.Course.Create(ctx, intro101()); !errors.Is(err, ErrCourseExists) {
				t.Errorf("期望 ErrCourseExists，实际: %v", err)
			}
			if err := svc.Course.Delete(ctx, "101"); err != nil {
				t.Fatalf("Delete 应成功: %v", err)
			}

			tasks, err := svc.Task.ListByCourse(ctx, "101")
			if err != nil {
				t.Fatalf("ListByCourse 应成功: %v", err)
			}
			if len(tasks) != 1 || tasks[0].CourseName != "101" {
				t.Errorf("期望保留作业且课程名回退为编码，实际 %+v", tasks)
			}
		})
	}
}
