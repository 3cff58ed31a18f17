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

// ── 成绩模块业务错误 ──

var (
	ErrGradeNotFound = fmt.Errorf("成绩不存在: %w", apperrors.ErrNotFound)
	ErrGradeExists   = fmt.Errorf("该学生此作业的成绩已存在: %w", apperrors.ErrDuplicateKey)
)

// GradeService 成绩业务接口
type GradeService interface {
	Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeView, error)
	GetByID(ctx context.Context, id string) (*dto.GradeView, error)
	// List 可按学号或作业编码过滤
	List(ctx context.Context, req *dto.GradeListRequest) ([]dto.GradeView, error)
	// Update 只修改分数，(学生, 作业) 组合不变
	Update(ctx context.Context, id string, req *dto.UpdateGradeRequest) (*dto.GradeView, error)
	Delete(ctx context.Context, id string) error
}

type gradeService struct {
	*base
}

// NewGradeService 创建成绩服务
func NewGradeService(repo *repository.Repository, v *validator.Validator, logger *zap.Logger, now func() time.Time) GradeService {
	return &gradeService{newBase(repo, v, logger, now)}
}

// ────────────────────── Create ──────────────────────

func (s *gradeService) Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeView, error) {
	grade := req.ToModel()
	if err := s.validator.Grade(grade).Err(); err != nil {
		return nil, err
	}

	_, err := s.repo.Grade.FindByPair(ctx, grade.StudentID, grade.TaskCode)
	switch {
	case err == nil:
		return nil, ErrGradeExists
	case !errors.Is(err, store.ErrNotFound):
		s.logger.Error("查询成绩失败", zap.String("pair", grade.PairKey()), zap.Error(err))
		return nil, err
	}

	if err := s.checkRefs(ctx,
		s.studentRef("studentId", grade.StudentID),
		s.taskRef("taskCode", grade.TaskCode),
	); err != nil {
		return nil, err
	}

	s.touchCreated(&grade.Timestamps)
	if err := s.repo.Grade.Create(ctx, grade); err != nil {
		s.logger.Error("录入成绩失败", zap.String("pair", grade.PairKey()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("成绩已录入", zap.String("id", grade.ID), zap.String("pair", grade.PairKey()))
	return s.view(ctx, grade)
}

// ────────────────────── GetByID ──────────────────────

func (s *gradeService) GetByID(ctx context.Context, id string) (*dto.GradeView, error) {
	grade, err := s.repo.Grade.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, ErrGradeNotFound, "查询成绩失败", zap.String("id", id))
	}
	return s.view(ctx, grade)
}

// ────────────────────── List ──────────────────────

func (s *gradeService) List(ctx context.Context, req *dto.GradeListRequest) ([]dto.GradeView, error) {
	grades, err := s.repo.Grade.List(ctx)
	if err != nil {
		s.logger.Error("列出成绩失败", zap.Error(err))
		return nil, err
	}

	students, err := s.studentIndex(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.GradeView, 0, len(grades))
	for i := range grades {
		g := &grades[i]
		if req.StudentID != "" && g.StudentID != req.StudentID {
			continue
		}
		if req.TaskCode != "" && g.TaskCode != req.TaskCode {
			continue
		}
		result = append(result, toGradeView(g, students[g.StudentID], tasks[g.TaskCode]))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PairKey() < result[j].PairKey() })
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *gradeService) Update(ctx context.Context, id string, req *dto.UpdateGradeRequest) (*dto.GradeView, error) {
	grade, err := s.repo.Grade.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, ErrGradeNotFound, "查询成绩失败", zap.String("id", id))
	}

	prev := grade.Timestamps
	grade.TaskGrade = req.TaskGrade
	if err := s.validator.Grade(grade).Err(); err != nil {
		return nil, err
	}

	s.touchUpdated(&grade.Timestamps, prev)
	if err := s.repo.Grade.Update(ctx, grade); err != nil {
		s.logger.Error("更新成绩失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.view(ctx, grade)
}

// ────────────────────── Delete ──────────────────────

func (s *gradeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Grade.GetByID(ctx, id); err != nil {
		return s.notFound(err, ErrGradeNotFound, "查询成绩失败", zap.String("id", id))
	}

	if err := s.repo.Grade.Delete(ctx, id); err != nil {
		s.logger.Error("删除成绩失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *gradeService) view(ctx context.Context, grade *model.Grade) (*dto.GradeView, error) {
	student, err := s.repo.Student.GetByID(ctx, grade.StudentID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("查询学生失败", zap.String("student_id", grade.StudentID), zap.Error(err))
		return nil, err
	}
	task, err := s.repo.Task.GetByCode(ctx, grade.TaskCode)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("查询作业失败", zap.String("task_code", grade.TaskCode), zap.Error(err))
		return nil, err
	}
	view := toGradeView(grade, student, task)
	return &view, nil
}

// toGradeView 学生或作业为 nil 时名称回退为原始编码
func toGradeView(grade *model.Grade, student *model.Student, task *model.Task) dto.GradeView {
	view := dto.GradeView{Grade: *grade, StudentName: grade.StudentID, TaskName: grade.TaskCode}
	if student != nil {
		view.StudentName = student.FullName
	}
	if task != nil {
		view.TaskName = task.TaskName
		view.CourseCode = task.CourseCode
	}
	return view
}
