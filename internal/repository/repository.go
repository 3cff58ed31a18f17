package repository

import (
	"college-admin/backend/internal/store"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Student StudentRepository
	Course  CourseRepository
	Task    TaskRepository
	Grade   GradeRepository
	Message MessageRepository
}

// NewRepository 基于集合存储创建 Repository 聚合
func NewRepository(s store.Store) *Repository {
	return &Repository{
		Student: NewStudentRepo(s.Collection(store.Students)),
		Course:  NewCourseRepo(s.Collection(store.Courses)),
		Task:    NewTaskRepo(s.Collection(store.Tasks)),
		Grade:   NewGradeRepo(s.Collection(store.Grades)),
		Message: NewMessageRepo(s.Collection(store.Messages)),
	}
}
