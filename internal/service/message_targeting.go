package service

import "college-admin/backend/internal/model"

// VisibleTo 判断消息对学生是否可见。
// 已设置的定向字段按"与"组合，未设置的字段不构成约束：
//   - studentId 必须等于该学生
//   - courseCode 必须在学生的选课列表中
//   - assignmentCode 对应的作业必须存在，且其课程在学生的选课列表中
//
// taskCourse 为 作业编码 → 课程编码。
func VisibleTo(m *model.Message, s *model.Student, taskCourse map[string]string) bool {
	if m.StudentID != "" && m.StudentID != s.StudentID {
		return false
	}
	if m.CourseCode != "" && !s.Courses.Contains(m.CourseCode) {
		return false
	}
	if m.AssignmentCode != "" {
		course, ok := taskCourse[m.AssignmentCode]
		if !ok || !s.Courses.Contains(course) {
			return false
		}
	}
	return true
}

// Audience 返回当前可见该消息的学生
func Audience(m *model.Message, students []model.Student, taskCourse map[string]string) []model.Student {
	out := make([]model.Student, 0)
	for i := range students {
		if VisibleTo(m, &students[i], taskCourse) {
			out = append(out, students[i])
		}
	}
	return out
}

func taskCourses(tasks map[string]*model.Task) map[string]string {
	out := make(map[string]string, len(tasks))
	for code, t := range tasks {
		out[code] = t.CourseCode
	}
	return out
}
