package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/repository"
	"college-admin/backend/internal/store/memory"
	apperrors "college-admin/backend/pkg/errors"
)

func TestCourseService_DuplicateCode(t *testing.T) {
	svc, _ := setupTestService()
	ctx := context.Background()

	if _, err := svc.Course.Create(ctx, intro101()); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	_, err := svc.Course.Create(ctx, intro101())
	if !errors.Is(err, ErrCourseExists) || !errors.Is(err, apperrors.ErrDuplicateKey) {
		t.Errorf("期望 ErrCourseExists，实际: %v", err)
	}

	// 编辑课程名不触发主键重复
	updated, err := svc.Course.Update(ctx, "101", &dto.UpdateCourseRequest{
		CourseName: "Intro Advanced",
		Lecturer:   "Dr X",
		Year:       2023,
		Semester:   "A",
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.CourseCode != "101" || updated.CourseName != "Intro Advanced" {
		t.Errorf("更新结果不符: %+v", updated)
	}

	list, _ := svc.Course.List(ctx)
	if len(list) != 1 {
		t.Errorf("期望仅 1 门课程，实际 %d", len(list))
	}
}

func TestCourseService_Update_Validation(t *testing.T) {
	svc, _ := setupTestService()
	ctx := context.Background()
	mustCreateCourse(t, svc, "101", "Intro")

	_, err := svc.Course.Update(ctx, "101", &dto.UpdateCourseRequest{CourseName: "Intro 2", Lecturer: "Dr X", Year: 2023, Semester: "Z"})
	ve, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	if ve.Fields["courseName"] == "" || ve.Fields["semester"] == "" {
		t.Errorf("期望 courseName 与 semester 校验失败: %v", ve.Fields)
	}
}

func TestCourseService_GetByCode_NotFound(t *testing.T) {
	svc, _ := setupTestService()

	_, err := svc.Course.GetByCode(context.Background(), "999")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestNewCourseService_Standalone(t *testing.T) {
	repo := repository.NewRepository(memory.New())
	svc := NewCourseService(repo, nil, zap.NewNop(), nil)

	course, err := svc.Create(context.Background(), intro101())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if course.CreatedAt == "" {
		t.Error("期望使用默认时钟写入 createdAt")
	}
	if _, err := svc.Create(context.Background(), intro101()); !errors.Is(err, ErrCourseExists) {
		t.Errorf("期望 ErrCourseExists，实际: %v", err)
	}
}
