package repository

import (
	"context"

	"college-admin/backend/internal/model"
	"college-admin/backend/internal/store"
)

// TaskRepository 作业数据访问接口
type TaskRepository interface {
	List(ctx context.Context) ([]model.Task, error)
	// ListByCourse 全量扫描后按 courseCode 过滤
	ListByCourse(ctx context.Context, courseCode string) ([]model.Task, error)
	GetByCode(ctx context.Context, taskCode string) (*model.Task, error)
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, taskCode string) error
}

type taskRepo struct {
	docs docRepo[model.Task]
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(col store.Collection) TaskRepository {
	return &taskRepo{docs: docRepo[model.Task]{col: col, name: store.Tasks}}
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	return r.docs.list(ctx)
}

func (r *taskRepo) ListByCourse(ctx context.Context, courseCode string) ([]model.Task, error) {
	all, err := r.docs.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0)
	for _, t := range all {
		if t.CourseCode == courseCode {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *taskRepo) GetByCode(ctx context.Context, taskCode string) (*model.Task, error) {
	return r.docs.get(ctx, taskCode)
}

func (r *taskRepo) Save(ctx context.Context, task *model.Task) error {
	return r.docs.put(ctx, task.TaskCode, task)
}

func (r *taskRepo) Delete(ctx context.Context, taskCode string) error {
	return r.docs.delete(ctx, taskCode)
}
