package repository

import (
	"context"

	"college-admin/backend/internal/model"
	"college-admin/backend/internal/store"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	List(ctx context.Context) ([]model.Course, error)
	GetByCode(ctx context.Context, courseCode string) (*model.Course, error)
	Save(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, courseCode string) error
}

type courseRepo struct {
	docs docRepo[model.Course]
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(col store.Collection) CourseRepository {
	return &courseRepo{docs: docRepo[model.Course]{col: col, name: store.Courses}}
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	return r.docs.list(ctx)
}

func (r *courseRepo) GetByCode(ctx context.Context, courseCode string) (*model.Course, error) {
	return r.docs.get(ctx, courseCode)
}

func (r *courseRepo) Save(ctx context.Context, course *model.Course) error {
	return r.docs.put(ctx, course.CourseCode, course)
}

func (r *courseRepo) Delete(ctx context.Context, courseCode string) error {
	return r.docs.delete(ctx, courseCode)
}
