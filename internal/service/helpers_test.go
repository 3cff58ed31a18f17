package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/repository"
	"college-admin/backend/internal/store"
	"college-admin/backend/internal/store/memory"
)

// ── 测试辅助 ──

func testNow() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

func setupTestService() (*Service, *repository.Repository) {
	return setupTestServiceOn(memory.New())
}

func setupTestServiceOn(st store.Store) (*Service, *repository.Repository) {
	repo := repository.NewRepository(st)
	return NewService(repo, zap.NewNop(), testNow), repo
}

// brokenStore 所有集合操作均失败
type brokenStore struct{ err error }

func (b brokenStore) Collection(string) store.Collection { return brokenCollection(b) }
func (b brokenStore) Close() error                       { return nil }

type brokenCollection struct{ err error }

func (c brokenCollection) List(context.Context) ([]store.Document, error)       { return nil, c.err }
func (c brokenCollection) Get(context.Context, string) (*store.Document, error) { return nil, c.err }
func (c brokenCollection) Put(context.Context, string, []byte) error            { return c.err }
func (c brokenCollection) Add(context.Context, []byte) (string, error)          { return "", c.err }
func (c brokenCollection) Delete(context.Context, string) error                 { return c.err }

func setupBrokenService() *Service {
	repo := repository.NewRepository(brokenStore{err: errors.New("connection refused")})
	return NewService(repo, zap.NewNop(), testNow)
}

func annLee() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		StudentID:        "111111111",
		FullName:         "Ann Lee",
		Age:              20,
		Gender:           "Female",
		RegistrationYear: 2023,
		Courses:          []string{},
	}
}

func intro101() *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{CourseCode: "101", CourseName: "Intro", Lecturer: "Dr X", Year: 2023, Semester: "A"}
}

func mustCreateStudent(t *testing.T, svc *Service, id, name string, courses ...string) {
	t.Helper()
	req := annLee()
	req.StudentID = id
	req.FullName = name
	req.Courses = courses
	if _, err := svc.Student.Create(context.Background(), req); err != nil {
		t.Fatalf("创建学生 %s 应成功: %v", id, err)
	}
}

func mustCreateCourse(t *testing.T, svc *Service, code, name string) {
	t.Helper()
	req := intro101()
	req.CourseCode = code
	req.CourseName = name
	if _, err := svc.Course.Create(context.Background(), req); err != nil {
		t.Fatalf("创建课程 %s 应成功: %v", code, err)
	}
}

func mustCreateTask(t *testing.T, svc *Service, code, courseCode, due string) {
	t.Helper()
	req := &dto.CreateTaskRequest{
		TaskCode:        code,
		CourseCode:      courseCode,
		TaskName:        "Task " + code,
		SubmissionDate:  due,
		TaskDescription: "desc " + code,
	}
	if _, err := svc.Task.Create(context.Background(), req); err != nil {
		t.Fatalf("创建作业 %s 应成功: %v", code, err)
	}
}
