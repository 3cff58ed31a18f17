package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/repository"
	apperrors "college-admin/backend/pkg/errors"
)

// ── 选课模块业务错误 ──

var (
	ErrAlreadyEnrolled = fmt.Errorf("学生已选该课程: %w", apperrors.ErrAlreadyEnrolled)
)

// EnrollmentService 选课业务接口。
// 学生记录中的 courses 是选课关系的唯一来源，课程记录不保存成员。
type EnrollmentService interface {
	// ListEnrolledStudents 全量扫描学生，返回 courses 包含该课程编码的学生
	ListEnrolledStudents(ctx context.Context, courseCode string) ([]dto.StudentResponse, error)
	// AssignStudent 已选时返回 ErrAlreadyEnrolled
	AssignStudent(ctx context.Context, studentID, courseCode string) (*dto.StudentResponse, error)
	// UnassignStudent 未选时为空操作
	UnassignStudent(ctx context.Context, studentID, courseCode string) (*dto.StudentResponse, error)
}

type enrollmentService struct {
	*base
}

// NewEnrollmentService 创建选课服务
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) EnrollmentService {
	return &enrollmentService{newBase(repo, nil, logger, now)}
}

// ────────────────────── ListEnrolledStudents ──────────────────────

func (s *enrollmentService) ListEnrolledStudents(ctx context.Context, courseCode string) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	sort.Slice(students, func(i, j int) bool { return students[i].StudentID < students[j].StudentID })

	result := make([]dto.StudentResponse, 0)
	for i := range students {
		if students[i].Courses.Contains(courseCode) {
			result = append(result, *dto.NewStudentResponse(&students[i]))
		}
	}
	return result, nil
}

// ────────────────────── AssignStudent ──────────────────────

func (s *enrollmentService) AssignStudent(ctx context.Context, studentID, courseCode string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}
	if _, err := s.repo.Course.GetByCode(ctx, courseCode); err != nil {
		return nil, s.notFound(err, ErrCourseNotFound, "查询课程失败", zap.String("course_code", courseCode))
	}

	courses, added := student.Courses.Add(courseCode)
	if !added {
		return nil, ErrAlreadyEnrolled
	}

	prev := student.Timestamps
	student.Courses = courses
	s.touchUpdated(&student.Timestamps, prev)
	if err := s.repo.Student.Save(ctx, student); err != nil {
		s.logger.Error("保存选课失败", zap.String("student_id", studentID), zap.String("course_code", courseCode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生已选课", zap.String("student_id", studentID), zap.String("course_code", courseCode))
	return dto.NewStudentResponse(student), nil
}

// ────────────────────── UnassignStudent ──────────────────────

func (s *enrollmentService) UnassignStudent(ctx context.Context, studentID, courseCode string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}

	// 课程可能已被删除，仍允许移除遗留编码
	courses, removed := student.Courses.Remove(courseCode)
	if !removed {
		return dto.NewStudentResponse(student), nil
	}

	prev := student.Timestamps
	student.Courses = courses
	s.touchUpdated(&student.Timestamps, prev)
	if err := s.repo.Student.Save(ctx, student); err != nil {
		s.logger.Error("保存退课失败", zap.String("student_id", studentID), zap.String("course_code", courseCode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生已退课", zap.String("student_id", studentID), zap.String("course_code", courseCode))
	return dto.NewStudentResponse(student), nil
}
