package repository

import (
	"context"

	"college-admin/backend/internal/model"
	"college-admin/backend/internal/store"
)

// MessageRepository 消息数据访问接口
// 有 messageCode 的消息以其为键，其余使用存储生成的 ID
type MessageRepository interface {
	List(ctx context.Context) ([]model.Message, error)
	Get(ctx context.Context, key string) (*model.Message, error)
	// Create 无 messageCode 时以生成 ID 写入并回填 message.ID
	Create(ctx context.Context, message *model.Message) error
	// Save 按 message.Key() 整条覆盖
	Save(ctx context.Context, message *model.Message) error
	Delete(ctx context.Context, key string) error
}

type messageRepo struct {
	docs docRepo[model.Message]
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(col store.Collection) MessageRepository {
	return &messageRepo{docs: docRepo[model.Message]{
		col:  col,
		name: store.Messages,
		setKey: func(m *model.Message, key string) {
			if m.MessageCode == "" {
				m.ID = key
			}
		},
	}}
}

func (r *messageRepo) List(ctx context.Context) ([]model.Message, error) {
	return r.docs.list(ctx)
}

func (r *messageRepo) Get(ctx context.Context, key string) (*model.Message, error) {
	return r.docs.get(ctx, key)
}

func (r *messageRepo) Create(ctx context.Context, message *model.Message) error {
	if message.MessageCode != "" {
		message.ID = message.MessageCode
		return r.docs.put(ctx, message.MessageCode, message)
	}
	message.ID = ""
	_, err := r.docs.add(ctx, message)
	return err
}

func (r *messageRepo) Save(ctx context.Context, message *model.Message) error {
	return r.docs.put(ctx, message.Key(), message)
}

func (r *messageRepo) Delete(ctx context.Context, key string) error {
	return r.docs.delete(ctx, key)
}
