package repository

import (
	"context"

	"college-admin/backend/internal/model"
	"college-admin/backend/internal/store"
)

// GradeRepository 成绩数据访问接口（存储生成 ID）
type GradeRepository interface {
	List(ctx context.Context) ([]model.Grade, error)
	GetByID(ctx context.Context, id string) (*model.Grade, error)
	// FindByPair 全量扫描查找 (学生, 作业) 组合，不存在时返回 ErrNotFound
	FindByPair(ctx context.Context, studentID, taskCode string) (*model.Grade, error)
	// Create 以生成 ID 写入并回填 grade.ID
	Create(ctx context.Context, grade *model.Grade) error
	Update(ctx context.Context, grade *model.Grade) error
	Delete(ctx context.Context, id string) error
}

type gradeRepo struct {
	docs docRepo[model.Grade]
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(col store.Collection) GradeRepository {
	return &gradeRepo{docs: docRepo[model.Grade]{
		col:    col,
		name:   store.Grades,
		setKey: func(g *model.Grade, key string) { g.ID = key },
	}}
}

func (r *gradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	return r.docs.list(ctx)
}

func (r *gradeRepo) GetByID(ctx context.Context, id string) (*model.Grade, error) {
	return r.docs.get(ctx, id)
}

func (r *gradeRepo) FindByPair(ctx context.Context, studentID, taskCode string) (*model.Grade, error) {
	all, err := r.docs.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].StudentID == studentID && all[i].TaskCode == taskCode {
			return &all[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	grade.ID = ""
	_, err := r.docs.add(ctx, grade)
	return err
}

func (r *gradeRepo) Update(ctx context.Context, grade *model.Grade) error {
	return r.docs.put(ctx, grade.ID, grade)
}

func (r *gradeRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
