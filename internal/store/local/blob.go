package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.etcd.io/bbolt"
)

var boltBucket = []byte("LocalCollections")

// BoltBlob 以 bbolt 文件保存集合数组，键为集合名
type BoltBlob struct {
	db *bbolt.DB
}

// OpenBolt 打开（或创建）bbolt 文件
func OpenBolt(path string) (*BoltBlob, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("打开本地存储文件失败: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltBlob{db: db}, nil
}

func (b *BoltBlob) Load(_ context.Context, name string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(boltBucket)
		if bk == nil {
			return fmt.Errorf("bucket %s not found", boltBucket)
		}
		if v := bk.Get([]byte(name)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

func (b *BoltBlob) Save(_ context.Context, name string, data []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bk.Put([]byte(name), data)
	})
}

// Close 关闭 bbolt 文件
func (b *BoltBlob) Close() error {
	return b.db.Close()
}

// MemoryBlob 内存 Blob
type MemoryBlob struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBlob 创建内存 Blob
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{data: make(map[string][]byte)}
}

func (m *MemoryBlob) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBlob) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = append([]byte(nil), data...)
	return nil
}
