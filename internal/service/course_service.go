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

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound = fmt.Errorf("课程不存在: %w", apperrors.ErrNotFound)
	ErrCourseExists   = fmt.Errorf("课程编码已存在: %w", apperrors.ErrDuplicateKey)
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error)
	GetByCode(ctx context.Context, courseCode string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, courseCode string, req *dto.UpdateCourseRequest) (*model.Course, error)
	// Delete 不级联：引用该课程的作业、选课与消息保留原始编码
	Delete(ctx context.Context, courseCode string) error
}

type courseService struct {
	*base
}

// NewCourseService 创建课程服务
func NewCourseService(repo *repository.Repository, v *validator.Validator, logger *zap.Logger, now func() time.Time) CourseService {
	return &courseService{newBase(repo, v, logger, now)}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error) {
	course := req.ToModel()
	if err := s.validator.Course(course).Err(); err != nil {
		return nil, err
	}

	existing, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if existing[i].CourseCode == course.CourseCode {
			return nil, ErrCourseExists
		}
	}

	s.touchCreated(&course.Timestamps)
	if err := s.repo.Course.Save(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("course_code", course.CourseCode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程已创建", zap.String("course_code", course.CourseCode))
	return course, nil
}

// ────────────────────── GetByCode ──────────────────────

func (s *courseService) GetByCode(ctx context.Context, courseCode string) (*model.Course, error) {
	course, err := s.repo.Course.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, s.notFound(err, ErrCourseNotFound, "查询课程失败", zap.String("course_code", courseCode))
	}
	return course, nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseCode < courses[j].CourseCode })
	return courses, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, courseCode string, req *dto.UpdateCourseRequest) (*model.Course, error) {
	current, err := s.repo.Course.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, s.notFound(err, ErrCourseNotFound, "查询课程失败", zap.String("course_code", courseCode))
	}

	updated := &model.Course{
		CourseCode: current.CourseCode,
		CourseName: req.CourseName,
		Lecturer:   req.Lecturer,
		Year:       req.Year,
		Semester:   req.Semester,
	}
	if err := s.validator.Course(updated).Err(); err != nil {
		return nil, err
	}

	s.touchUpdated(&updated.Timestamps, current.Timestamps)
	if err := s.repo.Course.Save(ctx, updated); err != nil {
		s.logger.Error("更新课程失败", zap.String("course_code", courseCode), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, courseCode string) error {
	if _, err := s.repo.Course.GetByCode(ctx, courseCode); err != nil {
		return s.notFound(err, ErrCourseNotFound, "查询课程失败", zap.String("course_code", courseCode))
	}

	if err := s.repo.Course.Delete(ctx, courseCode); err != nil {
		s.logger.Error("删除课程失败", zap.String("course_code", courseCode), zap.Error(err))
		return err
	}

	s.logger.Info("课程已删除", zap.String("course_code", courseCode))
	return nil
}
