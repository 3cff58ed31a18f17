// Package store 定义集合存储契约：每个逻辑集合提供 list/get/put/add/delete，
// 记录以 JSON 文档保存。具体后端（内存、PostgreSQL、MongoDB、本地数组）在子包中实现，
// Router 按集合组合多个后端。
package store

import (
	"context"
	"fmt"
	"io"
	"sort"

	apperrors "college-admin/backend/pkg/errors"
)

// 逻辑集合名
const (
	Students = "students"
	Courses  = "courses"
	Tasks    = "tasks"
	Grades   = "grades"
	Messages = "messages"
)

// ErrNotFound 记录不存在
var ErrNotFound = apperrors.ErrNotFound

// KeyFields 各集合记录中承载键的 JSON 字段，按顺序取第一个非空值。
// 仅本地数组后端需要从记录本身读取键；生成键写入 "id"。
var KeyFields = map[string][]string{
	Students: {"studentId"},
	Courses:  {"courseCode"},
	Tasks:    {"taskCode"},
	Grades:   {"id"},
	Messages: {"messageCode", "id"},
}

// Document 一条记录：键 + JSON 内容
type Document struct {
	Key  string
	Data []byte
}

// Collection 单个集合的存储操作
type Collection interface {
	// List 返回集合全部记录，不保证顺序
	List(ctx context.Context) ([]Document, error)
	// Get 按键读取，不存在时返回 ErrNotFound
	Get(ctx context.Context, key string) (*Document, error)
	// Put 按键创建或整体覆盖
	Put(ctx context.Context, key string, data []byte) error
	// Add 以存储生成的键创建记录并返回该键
	Add(ctx context.Context, data []byte) (string, error)
	// Delete 删除记录，键不存在时不报错
	Delete(ctx context.Context, key string) error
}

// Store 集合存储
type Store interface {
	Collection(name string) Collection
	Close() error
}

// Router 按集合名路由到不同后端的 Store
type Router struct {
	collections map[string]Collection
	closers     []io.Closer
}

// NewRouter 创建 Router；closers 在 Close 时按注册逆序关闭
func NewRouter(collections map[string]Collection, closers ...io.Closer) *Router {
	return &Router{collections: collections, closers: closers}
}

// Collection 返回集合；未注册的集合返回一个所有操作都失败的集合
func (r *Router) Collection(name string) Collection {
	if c, ok := r.collections[name]; ok {
		return c
	}
	return unknownCollection(name)
}

// Close 关闭所有后端
func (r *Router) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SortDocuments 按键排序，便于各后端返回稳定结果
func SortDocuments(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
}

type unknownCollection string

func (u unknownCollection) err() error {
	return fmt.Errorf("集合 %s 未配置存储后端", string(u))
}

func (u unknownCollection) List(context.Context) ([]Document, error)       { return nil, u.err() }
func (u unknownCollection) Get(context.Context, string) (*Document, error) { return nil, u.err() }
func (u unknownCollection) Put(context.Context, string, []byte) error      { return u.err() }
func (u unknownCollection) Add(context.Context, []byte) (string, error)    { return "", u.err() }
func (u unknownCollection) Delete(context.Context, string) error           { return u.err() }
