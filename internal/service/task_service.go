package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/model"
	"college-admin/backend/internal/repository"
	"college-admin/backend/internal/store"
	"college-admin/backend/internal/validator"
	apperrors "college-admin/backend/pkg/errors"
)

// ── 作业模块业务错误 ──

var (
	ErrTaskNotFound = fmt.Errorf("作业不存在: %w", apperrors.ErrNotFound)
	ErrTaskExists   = fmt.Errorf("作业编码已存在: %w", apperrors.ErrDuplicateKey)
)

// TaskService 作业业务接口
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskView, error)
	GetByCode(ctx context.Context, taskCode string) (*dto.TaskView, error)
	List(ctx context.Context) ([]dto.TaskView, error)
	// ListByCourse 课程已删除时仍返回其作业，courseName 回退为原始编码
	ListByCourse(ctx context.Context, courseCode string) ([]dto.TaskView, error)
	Update(ctx context.Context, taskCode string, req *dto.UpdateTaskRequest) (*dto.TaskView, error)
	Delete(ctx context.Context, taskCode string) error
}

type taskService struct {
	*base
}

// NewTaskService 创建作业服务
func NewTaskService(repo *repository.Repository, v *validator.Validator, logger *zap.Logger, now func() time.Time) TaskService {
	return &taskService{newBase(repo, v, logger, now)}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskView, error) {
	task := req.ToModel()
	if err := s.validator.Task(task, validator.ModeCreate).Err(); err != nil {
		return nil, err
	}

	existing, err := s.repo.Task.List(ctx)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if existing[i].TaskCode == task.TaskCode {
			return nil, ErrTaskExists
		}
	}

	if err := s.checkRefs(ctx, s.courseRef("courseCode", task.CourseCode)); err != nil {
		return nil, err
	}

	s.touchCreated(&task.Timestamps)
	if err := s.repo.Task.Save(ctx, task); err != nil {
		s.logger.Error("创建作业失败", zap.String("task_code", task.TaskCode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("作业已创建", zap.String("task_code", task.TaskCode), zap.String("course_code", task.CourseCode))
	return s.view(ctx, task)
}

// ────────────────────── GetByCode ──────────────────────

func (s *taskService) GetByCode(ctx context.Context, taskCode string) (*dto.TaskView, error) {
	task, err := s.repo.Task.GetByCode(ctx, taskCode)
	if err != nil {
		return nil, s.notFound(err, ErrTaskNotFound, "查询作业失败", zap.String("task_code", taskCode))
	}
	return s.view(ctx, task)
}

// ────────────────────── List ──────────────────────

func (s *taskService) List(ctx context.Context) ([]dto.TaskView, error) {
	tasks, err := s.repo.Task.List(ctx)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return nil, err
	}
	return s.views(ctx, tasks)
}

// ────────────────────── ListByCourse ──────────────────────

func (s *taskService) ListByCourse(ctx context.Context, courseCode string) ([]dto.TaskView, error) {
	tasks, err := s.repo.Task.ListByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("按课程列出作业失败", zap.String("course_code", courseCode), zap.Error(err))
		return nil, err
	}
	return s.views(ctx, tasks)
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, taskCode string, req *dto.UpdateTaskRequest) (*dto.TaskView, error) {
	current, err := s.repo.Task.GetByCode(ctx, taskCode)
	if err != nil {
		return nil, s.notFound(err, ErrTaskNotFound, "查询作业失败", zap.String("task_code", taskCode))
	}

	updated := &model.Task{
		TaskCode:        current.TaskCode,
		CourseCode:      req.CourseCode,
		TaskName:        req.TaskName,
		SubmissionDate:  req.SubmissionDate,
		TaskDescription: req.TaskDescription,
	}
	if err := s.validator.Task(updated, validator.ModeUpdate).Err(); err != nil {
		return nil, err
	}

	// 仅在改挂课程时校验课程存在，孤立作业可原样保存
	if updated.CourseCode != current.CourseCode {
		if err := s.checkRefs(ctx, s.courseRef("courseCode", updated.CourseCode)); err != nil {
			return nil, err
		}
	}

	s.touchUpdated(&updated.Timestamps, current.Timestamps)
	if err := s.repo.Task.Save(ctx, updated); err != nil {
		s.logger.Error("更新作业失败", zap.String("task_code", taskCode), zap.Error(err))
		return nil, err
	}
	return s.view(ctx, updated)
}

// ────────────────────── Delete ──────────────────────

func (s *taskService) Delete(ctx context.Context, taskCode string) error {
	if _, err := s.repo.Task.GetByCode(ctx, taskCode); err != nil {
		return s.notFound(err, ErrTaskNotFound, "查询作业失败", zap.String("task_code", taskCode))
	}

	if err := s.repo.Task.Delete(ctx, taskCode); err != nil {
		s.logger.Error("删除作业失败", zap.String("task_code", taskCode), zap.Error(err))
		return err
	}

	s.logger.Info("作业已删除", zap.String("task_code", taskCode))
	return nil
}

// ── 内部辅助方法 ──

// view 单条作业展示，课程不存在时以原始编码作为课程名
func (s *taskService) view(ctx context.Context, task *model.Task) (*dto.TaskView, error) {
	name := task.CourseCode
	course, err := s.repo.Course.GetByCode(ctx, task.CourseCode)
	switch {
	case err == nil:
		name = course.CourseName
	case !errors.Is(err, store.ErrNotFound):
		s.logger.Error("查询课程失败", zap.String("course_code", task.CourseCode), zap.Error(err))
		return nil, err
	}
	return &dto.TaskView{Task: *task, CourseName: name}, nil
}

func (s *taskService) views(ctx context.Context, tasks []model.Task) ([]dto.TaskView, error) {
	courses, err := s.courseIndex(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].TaskCode < tasks[j].TaskCode })

	result := make([]dto.TaskView, 0, len(tasks))
	for i := range tasks {
		result = append(result, toTaskView(&tasks[i], courses))
	}
	return result, nil
}

func toTaskView(task *model.Task, courses map[string]*model.Course) dto.TaskView {
	name := task.CourseCode
	if c, ok := courses[task.CourseCode]; ok {
		name = c.CourseName
	}
	return dto.TaskView{Task: *task, CourseName: name}
}
