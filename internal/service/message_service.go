package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"college-admin/backend/internal/dto"
	"college-admin/backend/internal/model"
	"college-admin/backend/internal/repository"
	"college-admin/backend/internal/validator"
	apperrors "college-admin/backend/pkg/errors"
)

// ── 消息模块业务错误 ──

var (
	ErrMessageNotFound   = fmt.Errorf("消息不存在: %w", apperrors.ErrNotFound)
	ErrMessageExists     = fmt.Errorf("消息编码已存在: %w", apperrors.ErrDuplicateKey)
	ErrMessageNotVisible = fmt.Errorf("该学生不在消息受众内: %w", apperrors.ErrNotFound)
)

// MessageService 消息业务接口。
// 每条消息只保存一份，受众在读取时按定向字段计算。
type MessageService interface {
	Create(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageView, error)
	Get(ctx context.Context, key string) (*dto.MessageView, error)
	List(ctx context.Context) ([]dto.MessageView, error)
	// Update 键与已读记录不变
	Update(ctx context.Context, key string, req *dto.UpdateMessageRequest) (*dto.MessageView, error)
	Delete(ctx context.Context, key string) error
	// ListForStudent 返回对该学生可见的消息；unreadOnly 时过滤已读
	ListForStudent(ctx context.Context, studentID string, unreadOnly bool) ([]dto.MessageView, error)
	// ResolveAudience 计算消息当前的受众学生
	ResolveAudience(ctx context.Context, key string) (*dto.AudienceResponse, error)
	// MarkRead 幂等地记录学生已读
	MarkRead(ctx context.Context, key, studentID string) (*dto.MessageView, error)
}

type messageService struct {
	*base
}

// NewMessageService 创建消息服务
func NewMessageService(repo *repository.Repository, v *validator.Validator, logger *zap.Logger, now func() time.Time) MessageService {
	return &messageService{newBase(repo, v, logger, now)}
}

// ────────────────────── Create ──────────────────────

func (s *messageService) Create(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageView, error) {
	msg := req.ToModel()
	if err := s.validator.Message(msg).Err(); err != nil {
		return nil, err
	}

	if msg.MessageCode != "" {
		existing, err := s.repo.Message.List(ctx)
		if err != nil {
			s.logger.Error("列出消息失败", zap.Error(err))
			return nil, err
		}
		for i := range existing {
			if existing[i].Key() == msg.MessageCode {
				return nil, ErrMessageExists
			}
		}
	}

	if err := s.checkRefs(ctx,
		s.courseRef("courseCode", msg.CourseCode),
		s.taskRef("assignmentCode", msg.AssignmentCode),
		s.studentRef("studentId", msg.StudentID),
	); err != nil {
		return nil, err
	}

	s.touchCreated(&msg.Timestamps)
	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("发送消息失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("消息已发送",
		zap.String("key", msg.Key()),
		zap.String("course_code", msg.CourseCode),
		zap.String("assignment_code", msg.AssignmentCode),
		zap.String("student_id", msg.StudentID),
		zap.Bool("broadcast", msg.IsBroadcast()),
	)
	return s.adminView(ctx, msg)
}

// ────────────────────── Get ──────────────────────

func (s *messageService) Get(ctx context.Context, key string) (*dto.MessageView, error) {
	msg, err := s.repo.Message.Get(ctx, key)
	if err != nil {
		return nil, s.notFound(err, ErrMessageNotFound, "查询消息失败", zap.String("key", key))
	}
	return s.adminView(ctx, msg)
}

// ────────────────────── List ──────────────────────

func (s *messageService) List(ctx context.Context) ([]dto.MessageView, error) {
	msgs, err := s.repo.Message.List(ctx)
	if err != nil {
		s.logger.Error("列出消息失败", zap.Error(err))
		return nil, err
	}
	courses, tasks, err := s.indexes(ctx)
	if err != nil {
		return nil, err
	}

	sortMessages(msgs)
	result := make([]dto.MessageView, 0, len(msgs))
	for i := range msgs {
		result = append(result, toMessageView(&msgs[i], courses, tasks))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *messageService) Update(ctx context.Context, key string, req *dto.UpdateMessageRequest) (*dto.MessageView, error) {
	current, err := s.repo.Message.Get(ctx, key)
	if err != nil {
		return nil, s.notFound(err, ErrMessageNotFound, "查询消息失败", zap.String("key", key))
	}

	updated := &model.Message{
		ID:             current.ID,
		MessageCode:    current.MessageCode,
		MessageContent: req.MessageContent,
		CourseCode:     req.CourseCode,
		AssignmentCode: req.AssignmentCode,
		StudentID:      req.StudentID,
		ReadBy:         current.ReadBy,
	}
	if err := s.validator.Message(updated).Err(); err != nil {
		return nil, err
	}

	// 只校验发生变化的引用，已孤立的旧引用可原样保存
	var checks []refCheck
	if updated.CourseCode != current.CourseCode {
		checks = append(checks, s.courseRef("courseCode", updated.CourseCode))
	}
	if updated.AssignmentCode != current.AssignmentCode {
		checks = append(checks, s.taskRef("assignmentCode", updated.AssignmentCode))
	}
	if updated.StudentID != current.StudentID {
		checks = append(checks, s.studentRef("studentId", updated.StudentID))
	}
	if err := s.checkRefs(ctx, checks...); err != nil {
		return nil, err
	}

	s.touchUpdated(&updated.Timestamps, current.Timestamps)
	if err := s.repo.Message.Save(ctx, updated); err != nil {
		s.logger.Error("更新消息失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return s.adminView(ctx, updated)
}

// ────────────────────── Delete ──────────────────────

func (s *messageService) Delete(ctx context.Context, key string) error {
	if _, err := s.repo.Message.Get(ctx, key); err != nil {
		return s.notFound(err, ErrMessageNotFound, "查询消息失败", zap.String("key", key))
	}

	if err := s.repo.Message.Delete(ctx, key); err != nil {
		s.logger.Error("删除消息失败", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListForStudent ──────────────────────

func (s *messageService) ListForStudent(ctx context.Context, studentID string, unreadOnly bool) ([]dto.MessageView, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}

	msgs, err := s.repo.Message.List(ctx)
	if err != nil {
		s.logger.Error("列出消息失败", zap.Error(err))
		return nil, err
	}
	courses, tasks, err := s.indexes(ctx)
	if err != nil {
		return nil, err
	}
	taskCourse := taskCourses(tasks)

	sortMessages(msgs)
	result := make([]dto.MessageView, 0)
	for i := range msgs {
		m := &msgs[i]
		if !VisibleTo(m, student, taskCourse) {
			continue
		}
		read := m.ReadBy.Contains(studentID)
		if unreadOnly && read {
			continue
		}
		view := toMessageView(m, courses, tasks)
		view.Read = read
		view.ReadBy = nil
		result = append(result, view)
	}
	return result, nil
}

// ────────────────────── ResolveAudience ──────────────────────

func (s *messageService) ResolveAudience(ctx context.Context, key string) (*dto.AudienceResponse, error) {
	msg, err := s.repo.Message.Get(ctx, key)
	if err != nil {
		return nil, s.notFound(err, ErrMessageNotFound, "查询消息失败", zap.String("key", key))
	}

	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	tasks, err := s.taskIndex(ctx)
	if err != nil {
		return nil, err
	}

	audience := Audience(msg, students, taskCourses(tasks))
	sort.Slice(audience, func(i, j int) bool { return audience[i].StudentID < audience[j].StudentID })

	resp := &dto.AudienceResponse{
		MessageKey: msg.Key(),
		Broadcast:  msg.IsBroadcast(),
		Students:   make([]dto.StudentResponse, 0, len(audience)),
	}
	for i := range audience {
		resp.Students = append(resp.Students, *dto.NewStudentResponse(&audience[i]))
	}
	return resp, nil
}

// ────────────────────── MarkRead ──────────────────────

func (s *messageService) MarkRead(ctx context.Context, key, studentID string) (*dto.MessageView, error) {
	msg, err := s.repo.Message.Get(ctx, key)
	if err != nil {
		return nil, s.notFound(err, ErrMessageNotFound, "查询消息失败", zap.String("key", key))
	}
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, ErrStudentNotFound, "查询学生失败", zap.String("student_id", studentID))
	}

	courses, tasks, err := s.indexes(ctx)
	if err != nil {
		return nil, err
	}
	if !VisibleTo(msg, student, taskCourses(tasks)) {
		return nil, ErrMessageNotVisible
	}

	readBy, added := msg.ReadBy.Add(studentID)
	if added {
		msg.ReadBy = readBy
		if err := s.repo.Message.Save(ctx, msg); err != nil {
			s.logger.Error("保存已读状态失败", zap.String("key", key), zap.String("student_id", studentID), zap.Error(err))
			return nil, err
		}
	}

	view := toMessageView(msg, courses, tasks)
	view.Read = true
	view.ReadBy = nil
	return &view, nil
}

// ── 内部辅助方法 ──

func (s *messageService) indexes(ctx context.Context) (map[string]*model.Course, map[string]*model.Task, error) {
	courses, err := s.courseIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := s.taskIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	return courses, tasks, nil
}

func (s *messageService) adminView(ctx context.Context, msg *model.Message) (*dto.MessageView, error) {
	courses, tasks, err := s.indexes(ctx)
	if err != nil {
		return nil, err
	}
	view := toMessageView(msg, courses, tasks)
	return &view, nil
}

// toMessageView 课程或作业不存在时名称回退为原始编码
func toMessageView(m *model.Message, courses map[string]*model.Course, tasks map[string]*model.Task) dto.MessageView {
	view := dto.MessageView{Message: *m}
	if m.CourseCode != "" {
		view.CourseName = m.CourseCode
		if c, ok := courses[m.CourseCode]; ok {
			view.CourseName = c.CourseName
		}
	}
	if m.AssignmentCode != "" {
		view.TaskName = m.AssignmentCode
		if t, ok := tasks[m.AssignmentCode]; ok {
			view.TaskName = t.TaskName
		}
	}
	return view
}

// sortMessages 按创建时间倒序，时间相同时按键排序
func sortMessages(msgs []model.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt != msgs[j].CreatedAt {
			return msgs[i].CreatedAt > msgs[j].CreatedAt
		}
		return msgs[i].Key() < msgs[j].Key()
	})
}
