package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"college-admin/backend/internal/model"
	"college-admin/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
//   - 课程成绩表导出为 Excel (.xlsx)：行为选课学生，列为课程作业，缺失成绩填 "-"
//   - 学生作业日历导出为 iCalendar (.ics)：每个已选课程的作业对应一个全天事件
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportCourseGrades(ctx context.Context, courseCode string) (*bytes.Buffer, string, error)
	ExportStudentCalendar(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	*base
}

// NewExportService 创建导出服务
func NewExportService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) ExportService {
	return &exportService{newBase(repo, nil, logger, now)}
}

// ═══════════════════════════════════════════════════════════
// ExportCourseGrades — 导出课程成绩表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：课程名 (编码) 成绩表
//   - 表头：学号 | 姓名 | 各作业 | 平均分
//   - 单元格：成绩，未录入为 "-"

func (s *exportService) ExportCourseGrades(ctx context.Context, courseCode string) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, "", s.notFound(err, ErrCourseNotFound, "查询课程失败", zap.String("course_code", courseCode))
	}

	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, "", err
	}
	enrolled := make([]model.Student, 0)
	for i := range students {
		if students[i].Courses.Contains(courseCode) {
			enrolled = append(enrolled, students[i])
		}
	}
	sort.Slice(enrolled, func(i, j int) bool { return enrolled[i].StudentID < enrolled[j].StudentID })

	tasks, err := s.repo.Task.ListByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("按课程列出作业失败", zap.String("course_code", courseCode), zap.Error(err))
		return nil, "", err
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].SubmissionDate != tasks[j].SubmissionDate {
			return tasks[i].SubmissionDate < tasks[j].SubmissionDate
		}
		return tasks[i].TaskCode < tasks[j].TaskCode
	})

	grades, err := s.repo.Grade.List(ctx)
	if err != nil {
		s.logger.Error("列出成绩失败", zap.Error(err))
		return nil, "", err
	}
	// "studentId/taskCode" → 成绩
	gradeIndex := make(map[string]float64, len(grades))
	for i := range grades {
		gradeIndex[grades[i].PairKey()] = grades[i].TaskGrade
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := 2 + len(tasks) // 0-based：学号、姓名、作业…、平均分
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, colName(2), colName(lastCol), 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s (%s) 成绩表", course.CourseName, course.CourseCode))
	f.MergeCell(sheetName, "A1", cell(colName(lastCol), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "学号")
	f.SetCellValue(sheetName, cell("B", row), "姓名")
	for i, t := range tasks {
		f.SetCellValue(sheetName, cell(colName(2+i), row), fmt.Sprintf("%s (%s)", t.TaskName, t.TaskCode))
	}
	f.SetCellValue(sheetName, cell(colName(lastCol), row), "平均分")
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(lastCol), row), headerStyle)

	// 数据行
	row = 3
	for _, st := range enrolled {
		f.SetCellValue(sheetName, cell("A", row), st.StudentID)
		f.SetCellValue(sheetName, cell("B", row), st.FullName)

		var sum float64
		var count int
		for i, t := range tasks {
			key := (&model.Grade{StudentID: st.StudentID, TaskCode: t.TaskCode}).PairKey()
			if g, ok := gradeIndex[key]; ok {
				f.SetCellValue(sheetName, cell(colName(2+i), row), g)
				sum += g
				count++
			} else {
				f.SetCellValue(sheetName, cell(colName(2+i), row), "-")
			}
		}
		if count > 0 {
			f.SetCellValue(sheetName, cell(colName(lastCol), row), math.Round(sum/float64(count)*100)/100)
		} else {
			f.SetCellValue(sheetName, cell(colName(lastCol), row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("成绩表_%s_%s.xlsx", course.CourseCode, course.CourseName)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportStudentCalendar — 导出学生作业日历
// ═══════════════════════════════════════════════════════════
//
// 每个已选课程下截止日期有效的作业生成一个全天 VEVENT，
// 课程已删除时摘要中以原始编码代替课程名。

func (s *exportService) ExportStudentCalendar(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, "", s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}

	courses, err := s.courseIndex(ctx)
	if err != nil {
		return nil, "", err
	}
	tasks, err := s.repo.Task.List(ctx)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return nil, "", err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].TaskCode < tasks[j].TaskCode })

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//college-admin//tasks//ZH")
	cal.SetXWRCalName(fmt.Sprintf("%s 的作业", student.FullName))

	stamp := s.now().UTC()
	for i := range tasks {
		t := &tasks[i]
		if !student.Courses.Contains(t.CourseCode) {
			continue
		}
		due, ok := t.Due()
		if !ok {
			continue
		}

		courseName := t.CourseCode
		if c, ok := courses[t.CourseCode]; ok {
			courseName = c.CourseName
		}

		event := cal.AddEvent(fmt.Sprintf("task-%s-%s@college-admin", t.TaskCode, student.StudentID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(due)
		event.SetAllDayEndAt(due.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("[%s] %s", courseName, t.TaskName))
		if t.TaskDescription != "" {
			event.SetDescription(t.TaskDescription)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("作业日历_%s.ics", student.StudentID)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
