package repository

import (
	"context"

	"college-admin/backend/internal/model"
	"college-admin/backend/internal/store"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, studentID string) (*model.Student, error)
	// Save 以 studentId 为键整条覆盖写入
	Save(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, studentID string) error
}

type studentRepo struct {
	docs docRepo[model.Student]
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(col store.Collection) StudentRepository {
	return &studentRepo{docs: docRepo[model.Student]{col: col, name: store.Students}}
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	return r.docs.list(ctx)
}

func (r *studentRepo) GetByID(ctx context.Context, studentID string) (*model.Student, error) {
	return r.docs.get(ctx, studentID)
}

func (r *studentRepo) Save(ctx context.Context, student *model.Student) error {
	return r.docs.put(ctx, student.StudentID, student)
}

func (r *studentRepo) Delete(ctx context.Context, studentID string) error {
	return r.docs.delete(ctx, studentID)
}
