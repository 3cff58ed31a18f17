package service

import (
	"context"
	"errors"
	"testing"

	"college-admin/backend/internal/dto"
	apperrors "college-admin/backend/pkg/errors"
)

func setupGradeFixtures(t *testing.T) *Service {
	t.Helper()
	svc, _ := setupTestService()
	mustCreateCourse(t, svc, "101", "Intro")
	mustCreateStudent(t, svc, "123456789", "Bob Ray", "101")
	mustCreateStudent(t, svc, "111111111", "Ann Lee", "101")
	mustCreateTask(t, svc, "101", "101", "2025-04-01")
	mustCreateTask(t, svc, "102", "101", "2025-04-08")
	return svc
}

func TestGradeService_PairUniqueness(t *testing.T) {
	svc := setupGradeFixtures(t)
	ctx := context.Background()

	first, err := svc.Grade.Create(ctx, &dto.CreateGradeRequest{StudentID: "123456789", TaskCode: "101", TaskGrade: 80})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if first.ID == "" || first.StudentName != "Bob Ray" || first.TaskName != "Task 101" {
		t.Errorf("成绩展示不符: %+v", first)
	}

	_, err = svc.Grade.Create(ctx, &dto.CreateGradeRequest{StudentID: "123456789", TaskCode: "101", TaskGrade: 90})
	if !errors.Is(err, ErrGradeExists) || !errors.Is(err, apperrors.ErrDuplicateKey) {
		t.Errorf("期望 ErrGradeExists，实际: %v", err)
	}

	// 修改分数不改变 (学生, 作业) 组合
	updated, err := svc.Grade.Update(ctx, first.ID, &dto.UpdateGradeRequest{TaskGrade: 95})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.ID != first.ID || updated.StudentID != "123456789" || updated.TaskCode != "101" || updated.TaskGrade != 95 {
		t.Errorf("更新结果不符: %+v", updated)
	}

	list, _ := svc.Grade.List(ctx, &dto.GradeListRequest{})
	if len(list) != 1 {
		t.Errorf("期望仅 1 条成绩，实际 %d", len(list))
	}
}

func TestGradeService_Create_RequiresReferences(t *testing.T) {
	svc := setupGradeFixtures(t)

	_, err := svc.Grade.Create(context.Background(), &dto.CreateGradeRequest{StudentID: "999999999", TaskCode: "999", TaskGrade: 50})
	ve, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	if ve.Fields["studentId"] != "学生不存在" || ve.Fields["taskCode"] != "作业不存在" {
		t.Errorf("引用校验提示不符: %v", ve.Fields)
	}
}

func TestGradeService_Update_OutOfRange(t *testing.T) {
	svc := setupGradeFixtures(t)
	ctx := context.Background()
	g, _ := svc.Grade.Create(ctx, &dto.CreateGradeRequest{StudentID: "123456789", TaskCode: "101", TaskGrade: 80})

	_, err := svc.Grade.Update(ctx, g.ID, &dto.UpdateGradeRequest{TaskGrade: 101})
	if _, ok := apperrors.AsValidation(err); !ok {
		t.Errorf("期望 ValidationError，实际: %v", err)
	}
	_, err = svc.Grade.Update(ctx, "missing", &dto.UpdateGradeRequest{TaskGrade: 50})
	if !errors.Is(err, ErrGradeNotFound) {
		t.Errorf("期望 ErrGradeNotFound，实际: %v", err)
	}
}

func TestGradeService_List_FiltersAndFallback(t *testing.T) {
	svc := setupGradeFixtures(t)
	ctx := context.Background()
	for _, req := range []*dto.CreateGradeRequest{
		{StudentID: "123456789", TaskCode: "101", TaskGrade: 80},
		{StudentID: "123456789", TaskCode: "102", TaskGrade: 70},
		{StudentID: "111111111", TaskCode: "101", TaskGrade: 60},
	} {
		if _, err := svc.Grade.Create(ctx, req); err != nil {
			t.Fatalf("Create 应成功: %v", err)
		}
	}

	byStudent, _ := svc.Grade.List(ctx, &dto.GradeListRequest{StudentID: "123456789"})
	if len(byStudent) != 2 {
		t.Errorf("按学生过滤期望 2 条，实际 %d", len(byStudent))
	}
	byTask, _ := svc.Grade.List(ctx, &dto.GradeListRequest{TaskCode: "101"})
	if len(byTask) != 2 {
		t.Errorf("按作业过滤期望 2 条，实际 %d", len(byTask))
	}

	// 删除学生后成绩保留，姓名回退为学号
	if err := svc.Student.Delete(ctx, "111111111"); err != nil {
		t.Fatalf("删除学生应成功: %v", err)
	}
	orphans, _ := svc.Grade.List(ctx, &dto.GradeListRequest{StudentID: "111111111"})
	if len(orphans) != 1 || orphans[0].StudentName != "111111111" {
		t.Errorf("孤立成绩应以学号展示: %+v", orphans)
	}
}
