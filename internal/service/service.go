package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"college-admin/backend/internal/model"
	"college-admin/backend/internal/repository"
	"college-admin/backend/internal/store"
	"college-admin/backend/internal/validator"
	apperrors "college-admin/backend/pkg/errors"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Student    StudentService
	Course     CourseService
	Task       TaskService
	Grade      GradeService
	Enrollment EnrollmentService
	Message    MessageService
	Export     ExportService
	Validator  *validator.Validator
}

// NewService 创建 Service 聚合；now 为 nil 时使用 time.Now
func NewService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	v := validator.New(now)
	return &Service{
		Student:    NewStudentService(repo, v, logger, now),
		Course:     NewCourseService(repo, v, logger, now),
		Task:       NewTaskService(repo, v, logger, now),
		Grade:      NewGradeService(repo, v, logger, now),
		Enrollment: NewEnrollmentService(repo, logger, now),
		Message:    NewMessageService(repo, v, logger, now),
		Export:     NewExportService(repo, logger, now),
		Validator:  v,
	}
}

// base 各 Service 共享的依赖
type base struct {
	repo      *repository.Repository
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

func newBase(repo *repository.Repository, v *validator.Validator, logger *zap.Logger, now func() time.Time) *base {
	if now == nil {
		now = time.Now
	}
	if v == nil {
		v = validator.New(now)
	}
	return &base{repo: repo, validator: v, logger: logger, now: now}
}

// ── 内部辅助方法 ──

func (b *base) timestamp() string {
	return b.now().UTC().Format(time.RFC3339)
}

// touchCreated 写入创建/更新时间
func (b *base) touchCreated(ts *model.Timestamps) {
	now := b.timestamp()
	ts.CreatedAt = now
	ts.UpdatedAt = now
}

// touchUpdated 保留创建时间并刷新更新时间
func (b *base) touchUpdated(ts *model.Timestamps, prev model.Timestamps) {
	ts.CreatedAt = prev.CreatedAt
	ts.UpdatedAt = b.timestamp()
}

// notFound 区分记录不存在与存储失败：前者替换为业务错误，后者记录日志后原样返回
func (b *base) notFound(err, sentinel error, msg string, fields ...zap.Field) error {
	if errors.Is(err, store.ErrNotFound) {
		return sentinel
	}
	b.logger.Error(msg, append(fields, zap.Error(err))...)
	return err
}

// courseIndex 课程编码 → 课程
func (b *base) courseIndex(ctx context.Context) (map[string]*model.Course, error) {
	courses, err := b.repo.Course.List(ctx)
	if err != nil {
		b.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	idx := make(map[string]*model.Course, len(courses))
	for i := range courses {
		idx[courses[i].CourseCode] = &courses[i]
	}
	return idx, nil
}

// taskIndex 作业编码 → 作业
func (b *base) taskIndex(ctx context.Context) (map[string]*model.Task, error) {
	tasks, err := b.repo.Task.List(ctx)
	if err != nil {
		b.logger.Error("列出作业失败", zap.Error(err))
		return nil, err
	}
	idx := make(map[string]*model.Task, len(tasks))
	for i := range tasks {
		idx[tasks[i].TaskCode] = &tasks[i]
	}
	return idx, nil
}

// studentIndex 学号 → 学生
func (b *base) studentIndex(ctx context.Context) (map[string]*model.Student, error) {
	students, err := b.repo.Student.List(ctx)
	if err != nil {
		b.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	idx := make(map[string]*model.Student, len(students))
	for i := range students {
		idx[students[i].StudentID] = &students[i]
	}
	return idx, nil
}

// exists 判断引用的记录是否存在；仅存储失败时返回错误
func exists[T any](ctx context.Context, get func(context.Context, string) (*T, error), key string) (bool, error) {
	_, err := get(ctx, key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// refCheck 一条外键引用：field 为表单字段名，label 用于提示
type refCheck struct {
	field string
	label string
	key   string
	found func(context.Context, string) (bool, error)
}

func (b *base) courseRef(field, key string) refCheck {
	return refCheck{field: field, label: "课程", key: key, found: func(ctx context.Context, k string) (bool, error) {
		return exists(ctx, b.repo.Course.GetByCode, k)
	}}
}

func (b *base) taskRef(field, key string) refCheck {
	return refCheck{field: field, label: "作业", key: key, found: func(ctx context.Context, k string) (bool, error) {
		return exists(ctx, b.repo.Task.GetByCode, k)
	}}
}

func (b *base) studentRef(field, key string) refCheck {
	return refCheck{field: field, label: "学生", key: key, found: func(ctx context.Context, k string) (bool, error) {
		return exists(ctx, b.repo.Student.GetByID, k)
	}}
}

// checkRefs 校验非空引用均指向现存记录，缺失项汇总为字段校验错误
func (b *base) checkRefs(ctx context.Context, checks ...refCheck) error {
	fields := map[string]string{}
	for _, c := range checks {
		if c.key == "" {
			continue
		}
		ok, err := c.found(ctx, c.key)
		if err != nil {
			b.logger.Error("校验引用失败", zap.String("field", c.field), zap.String("key", c.key), zap.Error(err))
			return err
		}
		if !ok {
			fields[c.field] = c.label + "不存在"
		}
	}
	return apperrors.NewValidationError(fields)
}
