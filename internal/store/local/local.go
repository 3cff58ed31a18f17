// Package local 实现本地回退存储：每个逻辑集合保存为一个 JSON 数组，
// 任何修改都读取整个数组、修改后整体写回。数组本身存放在 Blob 中（bbolt 文件、Redis 或内存）。
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"college-admin/backend/internal/store"
)

// Blob 按名称保存整段字节的后端
type Blob interface {
	// Load 读取整段内容，不存在时返回 nil, nil
	Load(ctx context.Context, name string) ([]byte, error)
	// Save 整段覆盖写入
	Save(ctx context.Context, name string, data []byte) error
}

// Store 本地数组存储
type Store struct {
	blob  Blob
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New 基于 Blob 创建本地存储
func New(blob Blob) *Store {
	return &Store{blob: blob, locks: make(map[string]*sync.Mutex)}
}

// Collection 返回集合句柄；键字段取自 store.KeyFields
func (s *Store) Collection(name string) store.Collection {
	fields, ok := store.KeyFields[name]
	if !ok {
		fields = []string{"id"}
	}
	return &collection{s: s, name: name, keyFields: fields}
}

// Close 关闭底层 Blob（若支持）
func (s *Store) Close() error {
	if c, ok := s.blob.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

type collection struct {
	s         *Store
	name      string
	keyFields []string
}

type element = map[string]json.RawMessage

func (c *collection) load(ctx context.Context) ([]element, error) {
	raw, err := c.s.blob.Load(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var items []element
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("解析本地集合 %s 失败: %w", c.name, err)
	}
	return items, nil
}

func (c *collection) save(ctx context.Context, items []element) error {
	if items == nil {
		items = []element{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.s.blob.Save(ctx, c.name, raw)
}

func (c *collection) keyOf(e element) string {
	for _, f := range c.keyFields {
		v, ok := e[f]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

func (c *collection) indexOf(items []element, key string) int {
	for i, e := range items {
		if c.keyOf(e) == key {
			return i
		}
	}
	return -1
}

func (c *collection) List(ctx context.Context) ([]store.Document, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]store.Document, 0, len(items))
	for _, e := range items {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{Key: c.keyOf(e), Data: data})
	}
	return docs, nil
}

func (c *collection) Get(ctx context.Context, key string) (*store.Document, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := c.indexOf(items, key)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	data, err := json.Marshal(items[i])
	if err != nil {
		return nil, err
	}
	return &store.Document{Key: key, Data: data}, nil
}

// Put 记录中没有携带键时，把键写入 "id" 字段
func (c *collection) Put(ctx context.Context, key string, data []byte) error {
	var e element
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("记录不是 JSON 对象: %w", err)
	}
	if e == nil {
		return fmt.Errorf("记录不能为空")
	}
	if c.keyOf(e) != key {
		e["id"], _ = json.Marshal(key)
	}

	l := c.s.lock(c.name)
	l.Lock()
	defer l.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	if i := c.indexOf(items, key); i >= 0 {
		items[i] = e
	} else {
		items = append(items, e)
	}
	return c.save(ctx, items)
}

func (c *collection) Add(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString()
	if err := c.Put(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (c *collection) Delete(ctx context.Context, key string) error {
	l := c.s.lock(c.name)
	l.Lock()
	defer l.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	i := c.indexOf(items, key)
	if i < 0 {
		return nil
	}
	items = append(items[:i], items[i+1:]...)
	return c.save(ctx, items)
}
