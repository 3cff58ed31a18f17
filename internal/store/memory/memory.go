// Package memory 提供基于 map 的集合存储，用于测试与本地开发。
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"college-admin/backend/internal/store"
)

// Store 内存存储，所有集合共享一把读写锁
type Store struct {
	mu     sync.RWMutex
	tables map[string]map[string][]byte
}

// New 创建内存存储
func New() *Store {
	return &Store{tables: make(map[string]map[string][]byte)}
}

// Collection 返回集合句柄
func (s *Store) Collection(name string) store.Collection {
	return &collection{s: s, name: name}
}

// Close 无资源需要释放
func (s *Store) Close() error { return nil }

type collection struct {
	s    *Store
	name string
}

func (c *collection) table() map[string][]byte {
	t, ok := c.s.tables[c.name]
	if !ok {
		t = make(map[string][]byte)
		c.s.tables[c.name] = t
	}
	return t
}

func (c *collection) List(_ context.Context) ([]store.Document, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	t := c.s.tables[c.name]
	docs := make([]store.Document, 0, len(t))
	for k, v := range t {
		docs = append(docs, store.Document{Key: k, Data: clone(v)})
	}
	store.SortDocuments(docs)
	return docs, nil
}

func (c *collection) Get(_ context.Context, key string) (*store.Document, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	v, ok := c.s.tables[c.name][key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.Document{Key: key, Data: clone(v)}, nil
}

func (c *collection) Put(_ context.Context, key string, data []byte) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.table()[key] = clone(data)
	return nil
}

func (c *collection) Add(_ context.Context, data []byte) (string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	key := uuid.NewString()
	c.table()[key] = clone(data)
	return key, nil
}

func (c *collection) Delete(_ context.Context, key string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	delete(c.s.tables[c.name], key)
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
