package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/model"
	"college-admin/backend/internal/repository"
	"college-admin/backend/internal/validator"
	apperrors "college-admin/backend/pkg/errors"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound = fmt.Errorf("学生不存在: %w", apperrors.ErrNotFound)
	ErrStudentExists   = fmt.Errorf("学号已存在: %w", apperrors.ErrDuplicateKey)
)

// StudentService 学生业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	// Update 整条替换表单字段；学号与选课列表保持不变
	Update(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	// Delete 不级联删除成绩与消息
	Delete(ctx context.Context, studentID string) error
	// ListCourses 返回学生已选课程，课程已删除时以原始编码展示
	ListCourses(ctx context.Context, studentID string) ([]dto.EnrolledCourse, error)
}

type studentService struct {
	*base
}

// NewStudentService 创建学生服务
func NewStudentService(repo *repository.Repository, v *validator.Validator, logger *zap.Logger, now func() time.Time) StudentService {
	return &studentService{newBase(repo, v, logger, now)}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	student := req.ToModel()
	if err := s.validator.Student(student).Err(); err != nil {
		return nil, err
	}

	existing, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if existing[i].StudentID == student.StudentID {
			return nil, ErrStudentExists
		}
	}

	if len(student.Courses) > 0 {
		courses, err := s.courseIndex(ctx)
		if err != nil {
			return nil, err
		}
		for _, code := range student.Courses {
			if _, ok := courses[code]; !ok {
				return nil, apperrors.NewValidationError(map[string]string{
					"courses": fmt.Sprintf("课程 %s 不存在", code),
				})
			}
		}
	}

	s.touchCreated(&student.Timestamps)
	if err := s.repo.Student.Save(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.String("student_id", student.StudentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生已创建", zap.String("student_id", student.StudentID))
	return dto.NewStudentResponse(student), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}
	return dto.NewStudentResponse(student), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	sort.Slice(students, func(i, j int) bool { return students[i].StudentID < students[j].StudentID })

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *dto.NewStudentResponse(&students[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	current, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}

	updated := &model.Student{
		StudentID:        current.StudentID,
		FullName:         req.FullName,
		Age:              req.Age,
		Gender:           req.Gender,
		RegistrationYear: req.RegistrationYear,
		Courses:          current.Courses,
	}
	if err := s.validator.Student(updated).Err(); err != nil {
		return nil, err
	}

	s.touchUpdated(&updated.Timestamps, current.Timestamps)
	if err := s.repo.Student.Save(ctx, updated); err != nil {
		s.logger.Error("更新学生失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return dto.NewStudentResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, studentID string) error {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		return s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}

	if err := s.repo.Student.Delete(ctx, studentID); err != nil {
		s.logger.Error("删除学生失败", zap.String("student_id", studentID), zap.Error(err))
		return err
	}

	s.logger.Info("学生已删除", zap.String("student_id", studentID))
	return nil
}

// ────────────────────── ListCourses ──────────────────────

func (s *studentService) ListCourses(ctx context.Context, studentID string) ([]dto.EnrolledCourse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}

	courses, err := s.courseIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EnrolledCourse, 0, len(student.Courses))
	for _, code := range student.Courses {
		c, ok := courses[code]
		if !ok {
			result = append(result, dto.EnrolledCourse{CourseCode: code, CourseName: code, Missing: true})
			continue
		}
		result = append(result, dto.EnrolledCourse{
			CourseCode: c.CourseCode,
			CourseName: c.CourseName,
			Lecturer:   c.Lecturer,
			Year:       c.Year,
			Semester:   c.Semester,
		})
	}
	return result, nil
}
